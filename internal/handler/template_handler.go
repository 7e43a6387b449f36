package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/middleware"
	"github.com/brandloom/brandloom-backend/internal/service"
)

// TemplateHandler converts studio design templates into content packages
type TemplateHandler struct {
	converter  *service.TemplateConverter
	packageSvc *service.PackageService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(converter *service.TemplateConverter, packageSvc *service.PackageService) *TemplateHandler {
	return &TemplateHandler{converter: converter, packageSvc: packageSvc}
}

// ConvertTemplateRequest is the inbound contract of the template conversion route
type ConvertTemplateRequest struct {
	BrandID    string        `json:"brand_id" binding:"required"`
	TemplateID string        `json:"template_id"`
	Design     domain.Design `json:"design" binding:"required"`
	Persist    bool          `json:"persist"`
}

// Convert godoc
// @Summary      Convert a design template into a content package
// @Description  Derives copy roles from the design's text items and assembles a draft package. Set persist to also store the package.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body ConvertTemplateRequest true "Conversion request"
// @Success      200 {object} common.APIResponse{data=domain.ContentPackage}
// @Failure      400 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /templates/convert [post]
func (h *TemplateHandler) Convert(c *gin.Context) {
	var req ConvertTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	createdBy := middleware.GetUserID(c)
	pkg := h.converter.CreateContentPackageFromTemplate(req.Design, req.BrandID, req.TemplateID, createdBy)

	if !req.Persist {
		common.SuccessResponse(c, pkg, &common.Meta{BrandID: req.BrandID})
		return
	}

	stored, err := h.packageSvc.Create(c.Request.Context(), service.AssembleInput{
		BrandID:       pkg.BrandID,
		ContentID:     pkg.ContentID,
		Platform:      pkg.Platform,
		Copy:          pkg.Copy,
		DesignContext: &pkg.DesignContext,
		Visuals:       pkg.Visuals,
		CreatedBy:     createdBy,
		Agent:         "template_converter",
		Action:        service.ActionTemplateSelected,
		Notes:         req.TemplateID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.CreatedResponse(c, stored)
}
