package stt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

// maxInlineBytes is the inline content ceiling for recognition requests.
const maxInlineBytes = 10 << 20

type GoogleSpeech struct {
	c    *speech.Client
	http *http.Client

	Language     string
	Encoding     speechpb.RecognitionConfig_AudioEncoding
	SampleRateHz int32
}

func NewGoogleSpeech(ctx context.Context, language, encoding string, sampleRateHz int32) (*GoogleSpeech, error) {
	enc, err := ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = "en-US"
	}
	return &GoogleSpeech{
		c:            c,
		http:         &http.Client{},
		Language:     language,
		Encoding:     enc,
		SampleRateHz: sampleRateHz,
	}, nil
}

func ParseEncoding(name string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	v, ok := speechpb.RecognitionConfig_AudioEncoding_value[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown audio encoding %q", name)
	}
	return speechpb.RecognitionConfig_AudioEncoding(v), nil
}

func (g *GoogleSpeech) Close() error { return g.c.Close() }

func (g *GoogleSpeech) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	audio, err := download(ctx, g.http, audioURL, maxInlineBytes)
	if err != nil {
		return "", err
	}
	return g.Transcribe(ctx, audio)
}

// Transcribe runs long-running recognition and joins the best alternative of
// every result.
func (g *GoogleSpeech) Transcribe(ctx context.Context, audio []byte) (string, error) {
	op, err := g.c.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   g.Encoding,
			SampleRateHertz:            g.SampleRateHz,
			LanguageCode:               g.Language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", err
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return "", err
	}
	return joinResults(resp.GetResults()), nil
}

func joinResults(results []*speechpb.SpeechRecognitionResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		var best *speechpb.SpeechRecognitionAlternative
		for _, alt := range r.GetAlternatives() {
			if alt.GetTranscript() == "" {
				continue
			}
			if best == nil || alt.GetConfidence() > best.GetConfidence() {
				best = alt
			}
		}
		if best != nil {
			parts = append(parts, strings.TrimSpace(best.GetTranscript()))
		}
	}
	return strings.Join(parts, " ")
}

func download(ctx context.Context, c *http.Client, audioURL string, limit int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download recording: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("download recording: %w", err)
	}
	if len(b) > limit {
		return nil, fmt.Errorf("recording exceeds %d bytes", limit)
	}
	return b, nil
}
