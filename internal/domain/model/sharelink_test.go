package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeShareLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "view link already canonical",
			in:   "https://drive.google.com/file/d/abc123/view?usp=sharing",
			want: "https://drive.google.com/file/d/abc123/view?usp=sharing",
		},
		{
			name: "edit link collapses",
			in:   "https://drive.google.com/file/d/abc123/edit?usp=drivesdk",
			want: "https://drive.google.com/file/d/abc123/view?usp=sharing",
		},
		{
			name: "bare path form collapses",
			in:   "https://drive.google.com/file/d/abc123/",
			want: "https://drive.google.com/file/d/abc123/view?usp=sharing",
		},
		{
			name: "non-drive link unchanged",
			in:   "https://example.com/report.pdf",
			want: "https://example.com/report.pdf",
		},
		{
			name: "drive link without terminating slash unchanged",
			in:   "https://drive.google.com/file/d/abc123",
			want: "https://drive.google.com/file/d/abc123",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeShareLink(tt.in))
		})
	}
}

func TestShareLinkFileID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"path form", "https://drive.google.com/file/d/xyz789/view", "xyz789"},
		{"query form", "https://drive.google.com/uc?export=download&id=xyz789", "xyz789"},
		{"query form with trailing params", "https://drive.google.com/open?id=xyz789&authuser=0", "xyz789"},
		{"no id", "https://example.com/file.pdf", ""},
		{"unterminated path form", "https://drive.google.com/file/d/xyz789", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShareLinkFileID(tt.in))
		})
	}
}
