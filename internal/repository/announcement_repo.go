package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// AnnouncementFilter filters announcement list queries. VisibleOnly applies
// the non-privileged visibility rule at Now; ActiveOnly additionally forces
// active rows inside their window regardless of the requester's role.
type AnnouncementFilter struct {
	Page        int
	PageSize    int
	VisibleOnly bool
	ActiveOnly  bool
	Now         time.Time
}

// AnnouncementRepository exposes persistence helpers for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (models.Announcement, error)
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) (int, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).Preload("CreatedBy").First(&announcement, id).Error
	return announcement, err
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error) {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.VisibleOnly || filter.ActiveOnly {
		// Publication uses an inclusive bound while expiration excludes only
		// strictly-past deadlines.
		query = query.Where("active = ?", true).
			Where("publish_at IS NULL OR publish_at <= ?", now).
			Where("expire_at IS NULL OR expire_at >= ?", now)
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

	var announcements []models.Announcement
	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews bumps view_count by one in a single UPDATE so concurrent
// registrations never lose increments, then returns the stored count.
func (r *announcementRepository) IncrementViews(ctx context.Context, id uint) (int, error) {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var announcement models.Announcement
	if err := r.db.WithContext(ctx).Select("view_count").First(&announcement, id).Error; err != nil {
		return 0, err
	}
	return announcement.ViewCount, nil
}
