package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ValidateFile checks extension and size against upload limits before any
// processing starts.
func ValidateFile(path string, allowedFormats []string, maxSizeMB int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat audio: %w", err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	ok := false
	for _, f := range allowedFormats {
		if ext == f {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid format %q, allowed: %s", ext, strings.Join(allowedFormats, ", "))
	}
	if maxSizeMB > 0 && info.Size() > maxSizeMB*1024*1024 {
		return fmt.Errorf("file too large (%.1f MB), max %d MB", float64(info.Size())/(1024*1024), maxSizeMB)
	}
	return nil
}

// Duration reads the audio duration in seconds via ffprobe. Returns 0 when
// ffprobe fails; the pipeline treats duration as best effort.
func Duration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return d
}

// Preprocess converts the audio to mono 16 kHz WAV, which is what the ASR
// service expects. On ffmpeg failure the original path is returned so the
// pipeline can still attempt transcription.
func Preprocess(ctx context.Context, inputPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	out := filepath.Join(filepath.Dir(inputPath), base+"_processed.wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inputPath,
		"-ac", "1", "-ar", "16000",
		out,
	)
	if err := cmd.Run(); err != nil {
		return inputPath, fmt.Errorf("ffmpeg: %w", err)
	}
	return out, nil
}
