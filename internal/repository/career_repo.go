package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// CareerFilter filters career list queries. VisibleOnly restricts the result
// to active rows, which is how non-privileged requesters see the catalog.
type CareerFilter struct {
	Page        int
	PageSize    int
	Search      string
	VisibleOnly bool
}

// CareerRepository exposes persistence helpers for careers.
type CareerRepository interface {
	Create(ctx context.Context, career *models.Career) error
	GetByID(ctx context.Context, id uint) (models.Career, error)
	List(ctx context.Context, filter CareerFilter) ([]models.Career, int64, error)
	Update(ctx context.Context, career *models.Career) error
}

type careerRepository struct {
	db *gorm.DB
}

// NewCareerRepository constructs the repository implementation.
func NewCareerRepository(db *gorm.DB) CareerRepository {
	return &careerRepository{db: db}
}

func (r *careerRepository) Create(ctx context.Context, career *models.Career) error {
	return r.db.WithContext(ctx).Create(career).Error
}

func (r *careerRepository) GetByID(ctx context.Context, id uint) (models.Career, error) {
	var career models.Career
	err := r.db.WithContext(ctx).Preload("CreatedBy").First(&career, id).Error
	return career, err
}

func (r *careerRepository) List(ctx context.Context, filter CareerFilter) ([]models.Career, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Career{})

	if filter.VisibleOnly {
		query = query.Where("active = ?", true)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR institution LIKE ?", pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var careers []models.Career
	if err := query.Order("name ASC").Find(&careers).Error; err != nil {
		return nil, 0, err
	}

	return careers, total, nil
}

func (r *careerRepository) Update(ctx context.Context, career *models.Career) error {
	return r.db.WithContext(ctx).Save(career).Error
}
