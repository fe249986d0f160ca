package media

import (
	"os"
	"path/filepath"
	"testing"
)

var allowed = []string{"mp3", "wav", "m4a", "ogg", "flac"}

func writeTemp(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int
		maxMB   int64
		wantErr bool
	}{
		{"valid mp3", "a.mp3", 100, 100, false},
		{"valid uppercase extension", "b.WAV", 100, 100, false},
		{"wrong extension", "c.txt", 100, 100, true},
		{"no extension", "d", 100, 100, true},
		{"over size limit", "e.mp3", 2 * 1024 * 1024, 1, true},
		{"zero max means unlimited", "f.flac", 2 * 1024 * 1024, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.size)
			err := ValidateFile(path, allowed, tt.maxMB)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFile(%s) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFile_Missing(t *testing.T) {
	if err := ValidateFile("/does/not/exist.mp3", allowed, 100); err == nil {
		t.Error("expected an error for a missing file")
	}
}
