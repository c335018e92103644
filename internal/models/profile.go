package models

import (
	"time"

	"gorm.io/datatypes"
)

type StudentProfile struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id"`

	Phone    *string `gorm:"column:phone;type:text" json:"phone"`
	Location *string `gorm:"column:location;type:text" json:"location"`
	WorkAuth *string `gorm:"column:work_auth;type:text" json:"work_auth"`
	Bio      *string `gorm:"column:bio;type:text" json:"bio"`

	University *string  `gorm:"column:university;type:text" json:"university"`
	Major      *string  `gorm:"column:major;type:text" json:"major"`
	Minor      *string  `gorm:"column:minor;type:text" json:"minor"`
	GradYear   *int     `gorm:"column:grad_year" json:"grad_year"`
	GPA        *float64 `gorm:"column:gpa" json:"gpa"`

	Coursework datatypes.JSONSlice[string] `gorm:"column:coursework" json:"coursework"`
	Honors     datatypes.JSONSlice[string] `gorm:"column:honors" json:"honors"`
	Skills     datatypes.JSONSlice[string] `gorm:"column:skills" json:"skills"`

	LinkedIn  *string `gorm:"column:linked_in;type:text" json:"linked_in"`
	GitHub    *string `gorm:"column:github;type:text" json:"github"`
	Portfolio *string `gorm:"column:portfolio;type:text" json:"portfolio"`

	ResumeURL      *string `gorm:"column:resume_url;type:text" json:"resume_url"`
	CoverLetterURL *string `gorm:"column:cover_letter_url;type:text" json:"cover_letter_url"`
	TranscriptURL  *string `gorm:"column:transcript_url;type:text" json:"transcript_url"`

	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Experiences []WorkExperience `gorm:"foreignKey:ProfileID" json:"experiences"`
	Projects    []Project        `gorm:"foreignKey:ProfileID" json:"projects"`
}

func (StudentProfile) TableName() string { return "student_profiles" }

type WorkExperience struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProfileID   string     `gorm:"column:profile_id;type:uuid;index" json:"profile_id"`
	Company     string     `gorm:"column:company;type:text" json:"company"`
	Title       string     `gorm:"column:title;type:text" json:"title"`
	Location    *string    `gorm:"column:location;type:text" json:"location"`
	StartDate   time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date"`
	Current     bool       `gorm:"column:current" json:"current"`
	Description *string    `gorm:"column:description;type:text" json:"description"`
}

func (WorkExperience) TableName() string { return "work_experiences" }

type Project struct {
	ID           string                      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProfileID    string                      `gorm:"column:profile_id;type:uuid;index" json:"profile_id"`
	Name         string                      `gorm:"column:name;type:text" json:"name"`
	Description  *string                     `gorm:"column:description;type:text" json:"description"`
	URL          *string                     `gorm:"column:url;type:text" json:"url"`
	Technologies datatypes.JSONSlice[string] `gorm:"column:technologies" json:"technologies"`
}

func (Project) TableName() string { return "projects" }
