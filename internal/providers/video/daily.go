package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Daily talks to the Daily.co REST API.
type Daily struct {
	apiKey  string
	baseURL string
	roomTTL time.Duration
	http    *http.Client
	now     func() time.Time
}

func NewDaily(apiKey, baseURL string, roomTTL, timeout time.Duration) *Daily {
	if roomTTL <= 0 {
		roomTTL = 2 * time.Hour
	}
	return &Daily{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		roomTTL: roomTTL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type roomProperties struct {
	EnableRecording   string `json:"enable_recording"`
	EnableChat        bool   `json:"enable_chat"`
	EnableScreenshare bool   `json:"enable_screenshare"`
	StartVideoOff     bool   `json:"start_video_off"`
	StartAudioOff     bool   `json:"start_audio_off"`
	Exp               int64  `json:"exp"`
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Properties roomProperties `json:"properties"`
}

type dailyError struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}

func (d *Daily) CreateRoom(ctx context.Context, name string) (*Room, error) {
	body := createRoomRequest{
		Name: name,
		Properties: roomProperties{
			EnableRecording:   "cloud",
			EnableChat:        true,
			EnableScreenshare: true,
			Exp:               d.now().Add(d.roomTTL).Unix(),
		},
	}
	var room Room
	if _, err := d.do(ctx, http.MethodPost, "/rooms", body, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Daily) GetRoom(ctx context.Context, name string) (*Room, error) {
	var room Room
	status, err := d.do(ctx, http.MethodGet, "/rooms/"+url.PathEscape(name), nil, &room)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Daily) ListRecordings(ctx context.Context, roomName string) ([]Recording, error) {
	var resp struct {
		TotalCount int         `json:"total_count"`
		Data       []Recording `json:"data"`
	}
	if _, err := d.do(ctx, http.MethodGet, "/recordings?room_name="+url.QueryEscape(roomName), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (d *Daily) RecordingAccessLink(ctx context.Context, recordingID string) (string, error) {
	var resp struct {
		DownloadLink string `json:"download_link"`
		Expires      int64  `json:"expires"`
	}
	if _, err := d.do(ctx, http.MethodGet, "/recordings/"+url.PathEscape(recordingID)+"/access-link", nil, &resp); err != nil {
		return "", err
	}
	if resp.DownloadLink == "" {
		return "", errors.New("daily: empty download link")
	}
	return resp.DownloadLink, nil
}

// do sends one request and decodes a 2xx body into out. Error responses carry
// Daily's info text when present.
func (d *Daily) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("daily: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("daily: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("daily: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var de dailyError
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&de)
		switch {
		case de.Info != "":
			return resp.StatusCode, errors.New(de.Info)
		case de.Error != "":
			return resp.StatusCode, errors.New(de.Error)
		default:
			return resp.StatusCode, fmt.Errorf("daily: %s %s: status %d", method, path, resp.StatusCode)
		}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("daily: decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
