package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/middleware"
	"github.com/brandloom/brandloom-backend/internal/service"
)

// PackageHandler serves content package creation, reads and lifecycle writes
type PackageHandler struct {
	packageSvc *service.PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageSvc *service.PackageService) *PackageHandler {
	return &PackageHandler{packageSvc: packageSvc}
}

// UpdateStatusRequest is the inbound contract of the status transition route
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// AppendLogRequest is the inbound contract of the collaboration log route
type AppendLogRequest struct {
	Agent  string `json:"agent" binding:"required"`
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

// Create godoc
// @Summary      Assemble and persist a content package
// @Description  Merges copy, visuals and design context into a new draft package. Missing copy fields get literal template defaults.
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        request body service.AssembleInput true "Assembly input"
// @Success      201 {object} common.APIResponse{data=domain.ContentPackage}
// @Failure      400 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var in service.AssembleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if in.CreatedBy == "" {
		in.CreatedBy = middleware.GetUserID(c)
	}

	pkg, err := h.packageSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.CreatedResponse(c, pkg)
}

// Get godoc
// @Summary      Get a content package
// @Tags         packages
// @Produce      json
// @Param        contentId path string true "Content ID"
// @Success      200 {object} common.APIResponse{data=domain.ContentPackage}
// @Failure      404 {object} common.APIResponse
// @Router       /packages/{contentId} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	contentID := c.Param("contentId")

	pkg, err := h.packageSvc.Get(c.Request.Context(), contentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, pkg, nil)
}

// ListByBrand godoc
// @Summary      List a brand's content packages
// @Description  Pages through a brand's packages, newest first
// @Tags         packages
// @Produce      json
// @Param        brandId path  string true  "Brand ID"
// @Param        page    query int    false "Page number" default(1)
// @Param        limit   query int    false "Page size"   default(20)
// @Success      200 {object} common.APIResponse{data=[]domain.ContentPackage}
// @Router       /brands/{brandId}/packages [get]
func (h *PackageHandler) ListByBrand(c *gin.Context) {
	brandID := c.Param("brandId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	pkgs, total, err := h.packageSvc.ListByBrand(c.Request.Context(), brandID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, pkgs, &common.Meta{
		BrandID: brandID,
		Page:    page,
		Limit:   limit,
		Total:   total,
	})
}

// UpdateStatus godoc
// @Summary      Move a package through its lifecycle
// @Description  Applies one allowed status transition and records it in the collaboration log. Disallowed transitions return 409.
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        contentId path string true "Content ID"
// @Param        request body UpdateStatusRequest true "Target status"
// @Success      200 {object} common.APIResponse{data=domain.ContentPackage}
// @Failure      404 {object} common.APIResponse
// @Failure      409 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /packages/{contentId}/status [patch]
func (h *PackageHandler) UpdateStatus(c *gin.Context) {
	contentID := c.Param("contentId")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	agent := middleware.GetUserID(c)
	pkg, err := h.packageSvc.UpdateStatus(c.Request.Context(), contentID, req.Status, agent, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, pkg, nil)
}

// AppendLog godoc
// @Summary      Append a collaboration log entry
// @Description  Appends one entry to the package's append-only collaboration log
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        contentId path string true "Content ID"
// @Param        request body AppendLogRequest true "Log entry"
// @Success      200 {object} common.APIResponse{data=domain.ContentPackage}
// @Failure      400 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Security     BearerAuth
// @Router       /packages/{contentId}/log [post]
func (h *PackageHandler) AppendLog(c *gin.Context) {
	contentID := c.Param("contentId")

	var req AppendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pkg, err := h.packageSvc.AppendLog(c.Request.Context(), contentID, domain.CollaborationEntry{
		Agent:  req.Agent,
		Action: req.Action,
		Notes:  req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	common.SuccessResponse(c, pkg, nil)
}
