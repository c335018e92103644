package stt

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// maxUploadBytes is the file ceiling of the transcription endpoint.
const maxUploadBytes = 25 << 20

// recordingName carries the container hint the endpoint sniffs from.
const recordingName = "interview.mp4"

// Whisper transcribes Daily MP4 recordings through the OpenAI audio API.
type Whisper struct {
	c    *openai.Client
	http *http.Client

	Model    string
	Language string
}

// WhisperOption tweaks the client Whisper builds.
type WhisperOption func(*openai.ClientConfig)

// WithBaseURL points the client at another OpenAI-compatible endpoint.
func WithBaseURL(u string) WhisperOption {
	return func(c *openai.ClientConfig) { c.BaseURL = strings.TrimRight(u, "/") }
}

func NewWhisper(apiKey, model, language string, opts ...WhisperOption) *Whisper {
	cfg := openai.DefaultConfig(apiKey)
	for _, o := range opts {
		o(&cfg)
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Whisper{
		c:        openai.NewClientWithConfig(cfg),
		http:     &http.Client{},
		Model:    model,
		Language: whisperLanguage(language),
	}
}

func (w *Whisper) Close() error { return nil }

func (w *Whisper) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	audio, err := download(ctx, w.http, audioURL, maxUploadBytes)
	if err != nil {
		return "", err
	}
	resp, err := w.c.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.Model,
		FilePath: recordingName,
		Reader:   bytes.NewReader(audio),
		Language: w.Language,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// whisperLanguage turns a BCP-47 tag such as en-US into the ISO-639-1 code
// the endpoint accepts.
func whisperLanguage(tag string) string {
	lang, _, _ := strings.Cut(strings.TrimSpace(tag), "-")
	return strings.ToLower(lang)
}
