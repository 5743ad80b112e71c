package docprep

import (
	"path/filepath"
	"strings"
)

// SanitizeName normalizes a filename coming out of the ticketing system:
// "+-+" separators become "_", remaining "+" and spaces are dropped.
// Order matters: the separator must be rewritten before lone plus signs
// are removed.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "+-+", "_")
	name = strings.ReplaceAll(name, "+", "")
	return strings.ReplaceAll(name, " ", "")
}

// CopyFileName derives a copy filename: the same plus-sign rewrite as
// SanitizeName (spaces are kept, matching the original copies), then
// "-<suffix>" inserted before the extension.
func CopyFileName(filename, suffix string) string {
	name := strings.ReplaceAll(filename, "+-+", "_")
	name = strings.ReplaceAll(name, "+", "")
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "-" + suffix + ext
}
