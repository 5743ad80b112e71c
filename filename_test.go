package docprep

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plus-dash-plus separator becomes underscore",
			input: "CHG0012345+-+Deploy",
			want:  "CHG0012345_Deploy",
		},
		{
			name:  "lone plus signs are dropped",
			input: "Deploy+Plan",
			want:  "DeployPlan",
		},
		{
			name:  "spaces are dropped",
			input: "Deploy Plan v2",
			want:  "DeployPlanv2",
		},
		{
			name:  "separator rewritten before lone plus removal",
			input: "A+-+B+C D",
			want:  "A_BCD",
		},
		{
			name:  "clean name unchanged",
			input: "DeployPlan",
			want:  "DeployPlan",
		},
		{
			name:  "empty name",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCopyFileName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		suffix   string
		want     string
	}{
		{
			name:     "suffix inserted before extension",
			filename: "DeployPlan.docx",
			suffix:   "Stage-Evidence",
			want:     "DeployPlan-Stage-Evidence.docx",
		},
		{
			name:     "plus-dash-plus separator becomes underscore",
			filename: "CHG0012345+-+Deploy.docx",
			suffix:   "Rollback-Evidence",
			want:     "CHG0012345_Deploy-Rollback-Evidence.docx",
		},
		{
			name:     "lone plus signs are dropped",
			filename: "Deploy+Plan.docx",
			suffix:   "Stage-Evidence",
			want:     "DeployPlan-Stage-Evidence.docx",
		},
		{
			name:     "spaces are kept",
			filename: "Deploy Plan.docx",
			suffix:   "Stage-Evidence",
			want:     "Deploy Plan-Stage-Evidence.docx",
		},
		{
			name:     "no extension",
			filename: "DeployPlan",
			suffix:   "Stage-Evidence",
			want:     "DeployPlan-Stage-Evidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CopyFileName(tt.filename, tt.suffix); got != tt.want {
				t.Errorf("CopyFileName(%q, %q) = %q, want %q", tt.filename, tt.suffix, got, tt.want)
			}
		})
	}
}
