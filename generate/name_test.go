package generate

import (
	"path/filepath"
	"testing"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"fetch.go", "fetch_gemini_sync.go"},
		{"fetch_test.go", "fetch_gemini_sync_test.go"},
		{"fetch_linux.go", "fetch_gemini_sync_linux.go"},
		{"fetch_amd64.go", "fetch_gemini_sync_amd64.go"},
		{"fetch_linux_amd64_test.go", "fetch_gemini_sync_linux_amd64_test.go"},
		{"linux.go", "linux_gemini_sync.go"},
		{"http_client.go", "http_client_gemini_sync.go"},
		{filepath.Join("pkg", "api", "fetch.go"), filepath.Join("pkg", "api", "fetch_gemini_sync.go")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			got := OutputName(tt.path)
			if got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if !IsOutputName(got) {
				t.Errorf("IsOutputName(%q) = false", got)
			}
			if IsOutputName(tt.path) {
				t.Errorf("IsOutputName(%q) = true", tt.path)
			}
		})
	}
}

func TestIsGenerated(t *testing.T) {
	if !IsGenerated([]byte(GeneratedHeader + "\n\npackage a\n")) {
		t.Errorf("expect generated")
	}
	if IsGenerated([]byte("// Code generated by other. DO NOT EDIT.\n\npackage a\n")) {
		t.Errorf("expect not generated by gemini")
	}
}
