package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/service"
)

// BrandHandler serves brand guide reads and writes
type BrandHandler struct {
	brandCtxSvc *service.BrandContextService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandCtxSvc *service.BrandContextService) *BrandHandler {
	return &BrandHandler{brandCtxSvc: brandCtxSvc}
}

// GetContext godoc
// @Summary      Resolve a brand's evaluation context
// @Description  Returns the normalized brand context snapshot used by all evaluation and generation calls
// @Tags         brands
// @Produce      json
// @Param        brandId path string true "Brand ID"
// @Success      200 {object} common.APIResponse{data=domain.BrandContext}
// @Failure      404 {object} common.APIResponse
// @Router       /brands/{brandId}/context [get]
func (h *BrandHandler) GetContext(c *gin.Context) {
	brandID := c.Param("brandId")

	brandCtx, err := h.brandCtxSvc.Resolve(c.Request.Context(), brandID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, brandCtx, &common.Meta{BrandID: brandID})
}

// UpsertGuide godoc
// @Summary      Create or replace a brand guide
// @Description  Writes the brand guide for a brand. Accepts both canonical and legacy field names; legacy aliases are resolved at this boundary.
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        brandId path string true "Brand ID"
// @Param        request body domain.LegacyBrandGuidePayload true "Brand guide"
// @Success      200 {object} common.APIResponse{data=domain.BrandContext}
// @Failure      400 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /brands/{brandId}/guide [put]
func (h *BrandHandler) UpsertGuide(c *gin.Context) {
	brandID := c.Param("brandId")

	var payload domain.LegacyBrandGuidePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	brandCtx, err := h.brandCtxSvc.UpsertGuide(c.Request.Context(), brandID, payload.Canonicalize())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, brandCtx, &common.Meta{BrandID: brandID})
}
