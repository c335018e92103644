package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("webm_opus")
	if err != nil || enc != speechpb.RecognitionConfig_WEBM_OPUS {
		t.Fatalf("ParseEncoding = %v, %v", enc, err)
	}
	if _, err := ParseEncoding("mp3-ish"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestJoinResultsPicksBestAlternative(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{
			{Transcript: "tell me about yourself", Confidence: 0.9},
			{Transcript: "tell me a bout yourself", Confidence: 0.4},
		}},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{
			{Transcript: " I study robotics ", Confidence: 0.8},
		}},
		{},
	}
	if got := joinResults(results); got != "tell me about yourself I study robotics" {
		t.Fatalf("joinResults = %q", got)
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	b, err := download(context.Background(), srv.Client(), srv.URL+"/rec.webm", maxInlineBytes)
	if err != nil || string(b) != "audio-bytes" {
		t.Fatalf("download = %q, %v", b, err)
	}
	if _, err := download(context.Background(), srv.Client(), srv.URL+"/missing", maxInlineBytes); err == nil {
		t.Fatalf("expected error on 404")
	}
	if _, err := download(context.Background(), srv.Client(), srv.URL+"/rec.webm", 4); err == nil {
		t.Fatalf("expected error past the size limit")
	}
}
