// Package docprep prepares deployment-plan documents for evidence capture.
//
// The pipeline converts a legacy .doc file to .docx using an external office
// backend (LibreOffice, Pandoc, or Microsoft Word via AppleScript), rewrites
// table layout metadata to full-width fixed sizing, inserts a blank merged
// row after every content-bearing table row, and generates renamed, headered,
// redacted copies for different audiences.
//
// Each step is exposed as its own type (DocConverter, TableLayoutRewriter,
// RowExpander, CopyGenerator); Service sequences them. Use Start for
// background execution with a Task future:
//
//	svc := docprep.New(docprep.WithLogger(logger))
//	task := svc.Start(ctx, "plan.doc")
//	result, err := task.Wait()
package docprep
