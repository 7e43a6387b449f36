package repository

import (
	"gorm.io/gorm"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// ContentPackageRepository handles content package data access
type ContentPackageRepository interface {
	Create(row *domain.ContentPackageRow) error
	FindByContentID(contentID string) (*domain.ContentPackageRow, error)
	ListByBrandID(brandID string, page, limit int) ([]domain.ContentPackageRow, int64, error)
	Save(row *domain.ContentPackageRow) error
}

type contentPackageRepository struct {
	db *gorm.DB
}

// NewContentPackageRepository creates a new ContentPackageRepository
func NewContentPackageRepository(db *gorm.DB) ContentPackageRepository {
	return &contentPackageRepository{db: db}
}

func (r *contentPackageRepository) Create(row *domain.ContentPackageRow) error {
	return r.db.Create(row).Error
}

func (r *contentPackageRepository) FindByContentID(contentID string) (*domain.ContentPackageRow, error) {
	var row domain.ContentPackageRow
	if err := r.db.Where("content_id = ?", contentID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *contentPackageRepository) ListByBrandID(brandID string, page, limit int) ([]domain.ContentPackageRow, int64, error) {
	var rows []domain.ContentPackageRow
	var total int64

	query := r.db.Model(&domain.ContentPackageRow{}).Where("brand_id = ?", brandID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *contentPackageRepository) Save(row *domain.ContentPackageRow) error {
	return r.db.Save(row).Error
}
