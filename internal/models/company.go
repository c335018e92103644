package models

import "time"

type Company struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text;index" json:"name"`
	Logo        *string   `gorm:"column:logo;type:text" json:"logo"`
	Website     *string   `gorm:"column:website;type:text" json:"website"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Employees []User `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Company) TableName() string { return "companies" }

type CompanySummary struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}

func (c *Company) Summary() *CompanySummary {
	if c == nil {
		return nil
	}
	return &CompanySummary{ID: c.ID, Name: c.Name, Logo: c.Logo}
}
