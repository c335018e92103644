package models

import "time"

type InterviewStatus string

const (
	InterviewPendingResponse InterviewStatus = "PENDING_RESPONSE"
	InterviewScheduled       InterviewStatus = "SCHEDULED"
	InterviewInProgress      InterviewStatus = "IN_PROGRESS"
	InterviewCompleted       InterviewStatus = "COMPLETED"
	InterviewCancelled       InterviewStatus = "CANCELLED"
)

const DefaultInterviewDuration = 30

type Interview struct {
	ID            string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ApplicationID string          `gorm:"column:application_id;type:uuid;index" json:"application_id"`
	Duration      int             `gorm:"column:duration" json:"duration"`
	Status        InterviewStatus `gorm:"column:status;type:text;index" json:"status"`
	ScheduledAt   *time.Time      `gorm:"column:scheduled_at" json:"scheduled_at"`
	RoomName      *string         `gorm:"column:room_name;type:text" json:"room_name"`
	RoomURL       *string         `gorm:"column:room_url;type:text" json:"room_url"`
	Transcription *string         `gorm:"column:transcription;type:text" json:"transcription,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Application *Application        `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	TimeSlots   []InterviewTimeSlot `gorm:"foreignKey:InterviewID" json:"time_slots"`
	Feedback    []InterviewFeedback `gorm:"foreignKey:InterviewID" json:"feedback,omitempty"`
}

func (Interview) TableName() string { return "interviews" }

func (iv *Interview) Slot(id string) *InterviewTimeSlot {
	for i := range iv.TimeSlots {
		if iv.TimeSlots[i].ID == id {
			return &iv.TimeSlots[i]
		}
	}
	return nil
}

type InterviewTimeSlot struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InterviewID string    `gorm:"column:interview_id;type:uuid;index" json:"interview_id"`
	StartTime   time.Time `gorm:"column:start_time" json:"start_time"`
	Selected    bool      `gorm:"column:selected" json:"selected"`
}

func (InterviewTimeSlot) TableName() string { return "interview_time_slots" }

type InterviewFeedback struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InterviewID     string    `gorm:"column:interview_id;type:uuid;index" json:"interview_id"`
	RecipientID     string    `gorm:"column:recipient_id;type:uuid;index" json:"recipient_id"`
	RecipientRole   UserRole  `gorm:"column:recipient_role;type:text" json:"recipient_role"`
	ClarityScore    int       `gorm:"column:clarity_score" json:"clarity_score"`
	PacingScore     int       `gorm:"column:pacing_score" json:"pacing_score"`
	EngagementScore int       `gorm:"column:engagement_score" json:"engagement_score"`
	Suggestions     string    `gorm:"column:suggestions;type:text" json:"suggestions"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (InterviewFeedback) TableName() string { return "interview_feedback" }
