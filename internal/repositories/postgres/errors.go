package postgres

import (
	"errors"

	"github.com/Ethansurfas/launchpad/internal/utils"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the repository sentinels. It relies on
// gorm.Config.TranslateError for unique violations.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.ErrDuplicate
	default:
		return err
	}
}

func affected(res *gorm.DB, none error) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return none
	}
	return nil
}
