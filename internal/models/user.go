package models

import "time"

type UserRole string

const (
	RoleStudent  UserRole = "STUDENT"
	RoleEmployer UserRole = "EMPLOYER"
	RoleAdmin    UserRole = "ADMIN"
)

func ParseRole(s string) (UserRole, bool) {
	switch r := UserRole(s); r {
	case RoleStudent, RoleEmployer, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// User mirrors the identity held by the auth provider; rows are created on
// first authenticated request.
type User struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text;index" json:"email"`
	Name      string    `gorm:"column:name;type:text" json:"name"`
	Role      UserRole  `gorm:"column:role;type:text" json:"role"`
	CompanyID *string   `gorm:"column:company_id;type:uuid;index" json:"company_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	StudentProfile *StudentProfile `gorm:"foreignKey:UserID" json:"student_profile,omitempty"`
}

func (User) TableName() string { return "users" }

// Summary is the public slice of a user embedded in listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// WorksFor reports whether u is an employee of companyID.
func (u *User) WorksFor(companyID string) bool {
	return u != nil && u.CompanyID != nil && *u.CompanyID != "" && *u.CompanyID == companyID
}
