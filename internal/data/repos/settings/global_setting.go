package settings

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/editais-backend/internal/domain/settings"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

type GlobalSettingRepo interface {
	Get(dbc dbctx.Context, key string) (*types.GlobalSetting, error)
	Set(dbc dbctx.Context, key string, value datatypes.JSON) (*types.GlobalSetting, error)
}

type globalSettingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGlobalSettingRepo(db *gorm.DB, baseLog *logger.Logger) GlobalSettingRepo {
	return &globalSettingRepo{db: db, log: baseLog.With("repo", "GlobalSettingRepo")}
}

// Get returns nil, nil when the key has never been set.
func (r *globalSettingRepo) Get(dbc dbctx.Context, key string) (*types.GlobalSetting, error) {
	if key == "" {
		return nil, nil
	}
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.GlobalSetting
	err := transaction.WithContext(dbc.Ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *globalSettingRepo) Set(dbc dbctx.Context, key string, value datatypes.JSON) (*types.GlobalSetting, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.GlobalSetting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}
