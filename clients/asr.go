package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vibejudge/vibejudge/analysis"
)

// Transcriber is the interface the pipeline needs from the speech-to-text
// collaborator.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*analysis.Transcript, error)
}

// ASRClient calls a whisper-style transcription service over HTTP.
type ASRClient struct {
	http *HTTP
	url  string
}

func NewASRClient(h *HTTP, url string) *ASRClient {
	return &ASRClient{http: h, url: url}
}

// Transcribe uploads the audio file as multipart form data and decodes the
// transcript: full text, timestamped segments with avg_logprob, duration and
// detected language.
func (a *ASRClient) Transcribe(ctx context.Context, audioPath string) (*analysis.Transcript, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := a.http.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("asr %s: %s", resp.Status, string(body))
	}

	var out analysis.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	return &out, nil
}
