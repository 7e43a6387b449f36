package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// BrandGuideRepository handles brand guide data access
type BrandGuideRepository interface {
	FindByBrandID(brandID string) (*domain.BrandGuide, error)
	Upsert(guide *domain.BrandGuide) error
}

type brandGuideRepository struct {
	db *gorm.DB
}

// NewBrandGuideRepository creates a new BrandGuideRepository
func NewBrandGuideRepository(db *gorm.DB) BrandGuideRepository {
	return &brandGuideRepository{db: db}
}

func (r *brandGuideRepository) FindByBrandID(brandID string) (*domain.BrandGuide, error) {
	var guide domain.BrandGuide
	if err := r.db.Where("brand_id = ?", brandID).First(&guide).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *brandGuideRepository) Upsert(guide *domain.BrandGuide) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "brand_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"brand_name", "tone", "brand_values", "target_audience",
			"forbidden_phrases", "required_disclaimers",
			"allowed_tone_descriptors", "brand_palette", "updated_at",
		}),
	}).Create(guide).Error
}
