package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/editais-backend/internal/data/repos"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type Repos struct {
	Congress      repos.CongressRepo
	GlobalSetting repos.GlobalSettingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Congress:      repos.NewCongressRepo(db, log),
		GlobalSetting: repos.NewGlobalSettingRepo(db, log),
	}
}
