package migration

import (
	"gorm.io/gorm"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// Run executes AutoMigrate for the brand guide and content package tables and
// seeds a demo brand guide if the table is empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.BrandGuide{}, &domain.ContentPackageRow{}); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.BrandGuide{}).Count(&count)
	if count == 0 {
		return seedBrandGuides(db)
	}

	return nil
}

// seedBrandGuides inserts a demo guide so local evaluation calls work out of
// the box
func seedBrandGuides(db *gorm.DB) error {
	guides := []domain.BrandGuide{
		{
			BrandID:                "demo-brand",
			BrandName:              "Demo Coffee Co.",
			Tone:                   "warm, friendly, conversational",
			Values:                 `["sustainability","community","craft"]`,
			TargetAudience:         "urban coffee lovers aged 25-40",
			ForbiddenPhrases:       `["cheap","world's best","guaranteed results"]`,
			RequiredDisclaimers:    `["Caffeine content varies by brew."]`,
			AllowedToneDescriptors: `["warm","friendly","conversational","playful"]`,
			BrandPalette:           `["#6F4E37","#F5E9DA","#2E2A27"]`,
		},
	}

	return db.Create(&guides).Error
}
