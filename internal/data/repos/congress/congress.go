package congress

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/editais-backend/internal/data/db"
	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/platform/dbctx"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

var (
	ErrNotFound  = errors.New("congress not found")
	ErrSlugTaken = errors.New("congress slug already exists")
)

type CongressRepo interface {
	GetAll(dbc dbctx.Context) ([]*types.Congress, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Congress, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Congress, error)
	SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error)
	Create(dbc dbctx.Context, row *types.Congress) error
	Update(dbc dbctx.Context, row *types.Congress) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type congressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCongressRepo(db *gorm.DB, baseLog *logger.Logger) CongressRepo {
	return &congressRepo{db: db, log: baseLog.With("repo", "CongressRepo")}
}

func (r *congressRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *congressRepo) GetAll(dbc dbctx.Context) ([]*types.Congress, error) {
	var out []*types.Congress
	if err := r.tx(dbc).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns nil, nil when no row matches.
func (r *congressRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Congress, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, "id = ?", id)
}

// GetBySlug returns nil, nil when no row matches.
func (r *congressRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Congress, error) {
	if slug == "" {
		return nil, nil
	}
	return r.first(dbc, "slug = ?", slug)
}

func (r *congressRepo) first(dbc dbctx.Context, query string, arg interface{}) (*types.Congress, error) {
	var row types.Congress
	err := r.tx(dbc).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *congressRepo) SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.tx(dbc).Model(&types.Congress{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *congressRepo) Create(dbc dbctx.Context, row *types.Congress) error {
	if row == nil {
		return nil
	}
	if err := r.tx(dbc).Create(row).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrSlugTaken, row.Slug)
		}
		return err
	}
	return nil
}

// Update writes every column of row. ErrNotFound when the id does not exist.
func (r *congressRepo) Update(dbc dbctx.Context, row *types.Congress) error {
	if row == nil || row.ID == uuid.Nil {
		return ErrNotFound
	}
	res := r.tx(dbc).Model(row).Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return fmt.Errorf("%w: %s", ErrSlugTaken, row.Slug)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *congressRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	res := r.tx(dbc).Where("id = ?", id).Delete(&types.Congress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
