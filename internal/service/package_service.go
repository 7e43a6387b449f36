package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/repository"
	"github.com/brandloom/brandloom-backend/pkg/cache"
	"github.com/brandloom/brandloom-backend/pkg/logger"
)

// PackageService persists assembled packages and drives their lifecycle:
// guarded status transitions and the append-only collaboration log.
// Packages are archived, never deleted.
type PackageService struct {
	assembler *PackageAssembler
	repo      repository.ContentPackageRepository
	cache     cache.Service
}

// NewPackageService creates a new PackageService
func NewPackageService(assembler *PackageAssembler, repo repository.ContentPackageRepository) *PackageService {
	return &PackageService{assembler: assembler, repo: repo}
}

// SetCache sets the cache service (optional dependency)
func (s *PackageService) SetCache(cacheService cache.Service) {
	s.cache = cacheService
}

// Create assembles and persists a new draft package
func (s *PackageService) Create(ctx context.Context, in AssembleInput) (*domain.ContentPackage, error) {
	if strings.TrimSpace(in.BrandID) == "" {
		return nil, common.ErrInvalidInput
	}

	pkg := s.assembler.Assemble(in)

	row, err := pkg.ToRow()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(row); err != nil {
		return nil, fmt.Errorf("persist content package: %w", err)
	}

	logger.WithBrandID(pkg.BrandID).Info().
		Str("content_id", pkg.ContentID).
		Str("action", pkg.CollaborationLog[0].Action).
		Msg("content package created")

	return pkg, nil
}

// Get loads one package by its stable content ID
func (s *PackageService) Get(ctx context.Context, contentID string) (*domain.ContentPackage, error) {
	if s.cache != nil {
		var cached domain.ContentPackage
		if err := s.cache.GetPackage(ctx, contentID, &cached); err == nil {
			return &cached, nil
		}
	}

	row, err := s.repo.FindByContentID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPackageNotFound
		}
		return nil, err
	}

	pkg, err := row.ToPackage()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetPackage(ctx, contentID, pkg)
	}

	return pkg, nil
}

// ListByBrand pages through a brand's packages, newest first
func (s *PackageService) ListByBrand(ctx context.Context, brandID string, page, limit int) ([]*domain.ContentPackage, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := s.repo.ListByBrandID(brandID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	pkgs := make([]*domain.ContentPackage, 0, len(rows))
	for i := range rows {
		pkg, err := rows[i].ToPackage()
		if err != nil {
			return nil, 0, err
		}
		pkgs = append(pkgs, pkg)
	}

	return pkgs, total, nil
}

// UpdateStatus moves a package through the allowed transition map, writing
// a transition entry to the collaboration log. The content ID stays stable
// across transitions.
func (s *PackageService) UpdateStatus(ctx context.Context, contentID, toStatus, agent, notes string) (*domain.ContentPackage, error) {
	pkg, err := s.loadFresh(contentID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(pkg.Status, toStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, pkg.Status, toStatus)
	}

	from := pkg.Status
	pkg.Status = toStatus
	pkg.UpdatedAt = time.Now().UTC()
	pkg.CollaborationLog = append(pkg.CollaborationLog, domain.CollaborationEntry{
		Agent:     orDefault(agent, "workflow"),
		Action:    fmt.Sprintf("status_%s", toStatus),
		Timestamp: pkg.UpdatedAt,
		Notes:     notes,
	})

	if err := s.save(ctx, pkg); err != nil {
		return nil, err
	}

	logger.WithBrandID(pkg.BrandID).Info().
		Str("content_id", contentID).
		Str("from", from).
		Str("to", toStatus).
		Msg("package status updated")

	return pkg, nil
}

// AppendLog appends one collaboration entry. The log only ever grows.
func (s *PackageService) AppendLog(ctx context.Context, contentID string, entry domain.CollaborationEntry) (*domain.ContentPackage, error) {
	if strings.TrimSpace(entry.Agent) == "" || strings.TrimSpace(entry.Action) == "" {
		return nil, common.ErrEmptyLogEntry
	}

	pkg, err := s.loadFresh(contentID)
	if err != nil {
		return nil, err
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	pkg.CollaborationLog = append(pkg.CollaborationLog, entry)
	pkg.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, pkg); err != nil {
		return nil, err
	}

	return pkg, nil
}

// loadFresh always reads from the repository, bypassing the cache, so
// lifecycle writes act on current state
func (s *PackageService) loadFresh(contentID string) (*domain.ContentPackage, error) {
	row, err := s.repo.FindByContentID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPackageNotFound
		}
		return nil, err
	}
	return row.ToPackage()
}

func (s *PackageService) save(ctx context.Context, pkg *domain.ContentPackage) error {
	row, err := s.repo.FindByContentID(pkg.ContentID)
	if err != nil {
		return err
	}

	updated, err := pkg.ToRow()
	if err != nil {
		return err
	}
	updated.ID = row.ID
	updated.CreatedAt = row.CreatedAt

	if err := s.repo.Save(updated); err != nil {
		return fmt.Errorf("save content package: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.InvalidatePackage(ctx, pkg.ContentID)
	}

	return nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
