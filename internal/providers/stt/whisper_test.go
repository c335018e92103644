package stt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeMP4 returns an ISO BMFF body of n bytes.
func fakeMP4(n int) []byte {
	b := make([]byte, n)
	copy(b, "\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
	return b
}

type transcriptionCall struct {
	filename string
	size     int64
	model    string
	language string
}

func newWhisperServer(t *testing.T, recording []byte, calls *[]transcriptionCall) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recording.mp4":
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write(recording)
		case "/v1/audio/transcriptions":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f, hdr, err := r.FormFile("file")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			n, _ := io.Copy(io.Discard, f)
			_ = f.Close()
			*calls = append(*calls, transcriptionCall{
				filename: hdr.Filename,
				size:     n,
				model:    r.FormValue("model"),
				language: r.FormValue("language"),
			})
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"text": " Tell me about yourself. "})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWhisperTranscribesLargeMP4(t *testing.T) {
	recording := fakeMP4(maxInlineBytes + 512<<10)
	var calls []transcriptionCall
	srv := newWhisperServer(t, recording, &calls)

	w := NewWhisper("sk-test", "", "en-US", WithBaseURL(srv.URL+"/v1/"))
	got, err := w.TranscribeURL(context.Background(), srv.URL+"/recording.mp4")
	if err != nil {
		t.Fatalf("TranscribeURL: %v", err)
	}
	if got != "Tell me about yourself." {
		t.Fatalf("transcript = %q", got)
	}
	if len(calls) != 1 {
		t.Fatalf("transcription calls = %d, want 1", len(calls))
	}
	want := transcriptionCall{filename: "interview.mp4", size: int64(len(recording)), model: "whisper-1", language: "en"}
	if calls[0] != want {
		t.Fatalf("call = %+v, want %+v", calls[0], want)
	}
}

func TestWhisperRejectsOversizedRecording(t *testing.T) {
	var calls []transcriptionCall
	srv := newWhisperServer(t, fakeMP4(maxUploadBytes+1), &calls)

	w := NewWhisper("sk-test", "whisper-1", "", WithBaseURL(srv.URL+"/v1"))
	_, err := w.TranscribeURL(context.Background(), srv.URL+"/recording.mp4")
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("err = %v, want size error", err)
	}
	if len(calls) != 0 {
		t.Fatalf("oversized recording was uploaded")
	}
}

func TestWhisperLanguage(t *testing.T) {
	for in, want := range map[string]string{"en-US": "en", "pt-BR": "pt", "FR": "fr", "": ""} {
		if got := whisperLanguage(in); got != want {
			t.Fatalf("whisperLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
