package postgres

import (
	"github.com/Ethansurfas/launchpad/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.StudentProfile{},
		&models.WorkExperience{},
		&models.Project{},
		&models.Job{},
		&models.Application{},
		&models.Interview{},
		&models.InterviewTimeSlot{},
		&models.InterviewFeedback{},
		&models.Review{},
		&models.CareerCenterReview{},
	)
}
