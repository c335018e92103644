package models

import "time"

type JobType string

const (
	JobInternship JobType = "INTERNSHIP"
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobContract   JobType = "CONTRACT"
)

func ParseJobType(s string) (JobType, bool) {
	switch t := JobType(s); t {
	case JobInternship, JobFullTime, JobPartTime, JobContract:
		return t, true
	default:
		return "", false
	}
}

type Job struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID   string     `gorm:"column:company_id;type:uuid;index" json:"company_id"`
	Title       string     `gorm:"column:title;type:text" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Location    string     `gorm:"column:location;type:text" json:"location"`
	Type        JobType    `gorm:"column:type;type:text;index" json:"type"`
	Salary      *string    `gorm:"column:salary;type:text" json:"salary"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline"`
	IsActive    bool       `gorm:"column:is_active;index" json:"is_active"`

	RequireResume      bool `gorm:"column:require_resume" json:"require_resume"`
	RequireCoverLetter bool `gorm:"column:require_cover_letter" json:"require_cover_letter"`
	RequireTranscript  bool `gorm:"column:require_transcript" json:"require_transcript"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	ApplicationCount int64 `gorm:"-" json:"application_count"`
}

func (Job) TableName() string { return "jobs" }
