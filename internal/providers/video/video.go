package video

import (
	"context"
	"time"
)

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type Recording struct {
	ID        string `json:"id"`
	RoomName  string `json:"room_name"`
	Status    string `json:"status"`
	StartTs   int64  `json:"start_ts"`
	DurationS int    `json:"duration"`
}

// Provider is the call vendor contract. GetRoom returns (nil, nil) when the
// room does not exist. ListRecordings returns the newest recording first.
type Provider interface {
	CreateRoom(ctx context.Context, name string) (*Room, error)
	GetRoom(ctx context.Context, name string) (*Room, error)
	ListRecordings(ctx context.Context, roomName string) ([]Recording, error)
	RecordingAccessLink(ctx context.Context, recordingID string) (string, error)
}
