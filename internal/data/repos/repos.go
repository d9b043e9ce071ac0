package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/editais-backend/internal/data/repos/congress"
	"github.com/yungbote/editais-backend/internal/data/repos/settings"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type CongressRepo = congress.CongressRepo
type GlobalSettingRepo = settings.GlobalSettingRepo

var (
	ErrCongressNotFound = congress.ErrNotFound
	ErrSlugTaken        = congress.ErrSlugTaken
)

func NewCongressRepo(db *gorm.DB, log *logger.Logger) CongressRepo {
	return congress.NewCongressRepo(db, log)
}

func NewGlobalSettingRepo(db *gorm.DB, log *logger.Logger) GlobalSettingRepo {
	return settings.NewGlobalSettingRepo(db, log)
}
