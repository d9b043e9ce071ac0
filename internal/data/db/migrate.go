package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/domain/settings"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&congress.Congress{},
		&settings.GlobalSetting{},
	)
}
