package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationReviewing ApplicationStatus = "REVIEWING"
	ApplicationInterview ApplicationStatus = "INTERVIEW"
	ApplicationOffered   ApplicationStatus = "OFFERED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

type Application struct {
	ID     string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID  string            `gorm:"column:job_id;type:uuid;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID string            `gorm:"column:user_id;type:uuid;uniqueIndex:idx_applications_job_user;index" json:"user_id"`
	Status ApplicationStatus `gorm:"column:status;type:text" json:"status"`

	ResumeURL      *string `gorm:"column:resume_url;type:text" json:"resume_url"`
	CoverLetterURL *string `gorm:"column:cover_letter_url;type:text" json:"cover_letter_url"`
	TranscriptURL  *string `gorm:"column:transcript_url;type:text" json:"transcript_url"`
	CoverNote      *string `gorm:"column:cover_note;type:text" json:"cover_note"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Job        *Job        `gorm:"foreignKey:JobID" json:"job,omitempty"`
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Interviews []Interview `gorm:"foreignKey:ApplicationID" json:"interviews,omitempty"`
	Review     *Review     `gorm:"foreignKey:ApplicationID" json:"review,omitempty"`
}

func (Application) TableName() string { return "applications" }

// LatestInterview returns the most recently created interview, or nil.
func (a *Application) LatestInterview() *Interview {
	var latest *Interview
	for i := range a.Interviews {
		iv := &a.Interviews[i]
		if latest == nil || iv.CreatedAt.After(latest.CreatedAt) {
			latest = iv
		}
	}
	return latest
}
