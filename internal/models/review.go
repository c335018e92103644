package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a student's rating of the company behind one application.
type Review struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ApplicationID string `gorm:"column:application_id;type:uuid;uniqueIndex" json:"application_id"`
	ReviewerID    string `gorm:"column:reviewer_id;type:uuid;index" json:"reviewer_id"`
	CompanyID     string `gorm:"column:company_id;type:uuid;index" json:"company_id"`

	Responsiveness      int `gorm:"column:responsiveness" json:"responsiveness"`
	Transparency        int `gorm:"column:transparency" json:"transparency"`
	Professionalism     int `gorm:"column:professionalism" json:"professionalism"`
	InterviewExperience int `gorm:"column:interview_experience" json:"interview_experience"`
	Overall             int `gorm:"column:overall" json:"overall"`

	WasGhosted bool      `gorm:"column:was_ghosted" json:"was_ghosted"`
	Comment    *string   `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`

	Application *Application `gorm:"foreignKey:ApplicationID" json:"-"`
	Reviewer    *User        `gorm:"foreignKey:ReviewerID" json:"-"`
}

func (Review) TableName() string { return "reviews" }

func (r Review) Ratings() []int {
	return []int{r.Responsiveness, r.Transparency, r.Professionalism, r.InterviewExperience, r.Overall}
}

// CareerCenterReview is an admin-only assessment, one per (reviewer, company).
type CareerCenterReview struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ReviewerID string `gorm:"column:reviewer_id;type:uuid;uniqueIndex:idx_career_reviews_reviewer_company" json:"reviewer_id"`
	CompanyID  string `gorm:"column:company_id;type:uuid;uniqueIndex:idx_career_reviews_reviewer_company;index" json:"company_id"`

	StudentTreatment   int `gorm:"column:student_treatment" json:"student_treatment"`
	FeedbackTimeliness int `gorm:"column:feedback_timeliness" json:"feedback_timeliness"`
	HiringSuccess      int `gorm:"column:hiring_success" json:"hiring_success"`
	WouldRecommend     int `gorm:"column:would_recommend" json:"would_recommend"`

	Comment   *string   `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (CareerCenterReview) TableName() string { return "career_center_reviews" }

func (r CareerCenterReview) Ratings() []int {
	return []int{r.StudentTreatment, r.FeedbackTimeliness, r.HiringSuccess, r.WouldRecommend}
}

// RatingsInRange reports whether every rating lies in [MinRating, MaxRating].
func RatingsInRange(ratings ...int) bool {
	for _, r := range ratings {
		if r < MinRating || r > MaxRating {
			return false
		}
	}
	return true
}
