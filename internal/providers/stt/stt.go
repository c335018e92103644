package stt

import "context"

type Provider interface {
	// TranscribeURL downloads the recording at audioURL and returns its text.
	TranscribeURL(ctx context.Context, audioURL string) (string, error)
	Close() error
}
