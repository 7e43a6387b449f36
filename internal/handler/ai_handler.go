package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/middleware"
	"github.com/brandloom/brandloom-backend/internal/service"
)

// AiHandler serves the generation and evaluation endpoints
type AiHandler struct {
	variantSvc  *service.VariantService
	brandCtxSvc *service.BrandContextService
	brain       *service.BrandBrain
}

// NewAiHandler creates a new AiHandler
func NewAiHandler(variantSvc *service.VariantService, brandCtxSvc *service.BrandContextService, brain *service.BrandBrain) *AiHandler {
	return &AiHandler{
		variantSvc:  variantSvc,
		brandCtxSvc: brandCtxSvc,
		brain:       brain,
	}
}

// EvaluateRequest is the inbound contract of the standalone evaluation route
type EvaluateRequest struct {
	BrandID        string                 `json:"brand_id" binding:"required"`
	Text           string                 `json:"text"`
	Tone           string                 `json:"tone"`
	VisualMetadata *domain.VisualMetadata `json:"visual_metadata,omitempty"`
	BrandContext   *domain.BrandContext   `json:"brand_context,omitempty"`
}

// GenerateDocVariants godoc
// @Summary      Generate scored document variants
// @Description  Generates caption/document variants through the configured provider and scores each against the brand guide
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body domain.AiDocGenerationRequest true "Generation request"
// @Success      200 {object} common.APIResponse{data=domain.AiDocGenerationResponse}
// @Failure      400 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Router       /ai/doc-variants [post]
func (h *AiHandler) GenerateDocVariants(c *gin.Context) {
	var req domain.AiDocGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.variantSvc.GenerateDocVariants(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.ObserveGeneration("doc", resp.Status)
	if resp.BrandBrainEvaluation != nil {
		middleware.ObserveFidelityScore(resp.BrandBrainEvaluation.Score)
	}

	common.SuccessResponse(c, resp, &common.Meta{BrandID: req.BrandID})
}

// GenerateDesignVariants godoc
// @Summary      Generate scored design variants
// @Description  Generates design prompt variants through the configured provider and scores each against the brand guide
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body domain.AiDesignGenerationRequest true "Generation request"
// @Success      200 {object} common.APIResponse{data=domain.AiDesignGenerationResponse}
// @Failure      400 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Router       /ai/design-variants [post]
func (h *AiHandler) GenerateDesignVariants(c *gin.Context) {
	var req domain.AiDesignGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.variantSvc.GenerateDesignVariants(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.ObserveGeneration("design", resp.Status)
	if resp.BrandBrainEvaluation != nil {
		middleware.ObserveFidelityScore(resp.BrandBrainEvaluation.Score)
	}

	common.SuccessResponse(c, resp, &common.Meta{BrandID: req.BrandID})
}

// Evaluate godoc
// @Summary      Evaluate content against a brand guide
// @Description  Runs the deterministic check registry over one piece of content and returns the scored evaluation
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body EvaluateRequest true "Evaluation request"
// @Success      200 {object} common.APIResponse{data=domain.BrandBrainEvaluation}
// @Failure      400 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Router       /ai/evaluate [post]
func (h *AiHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	brand := req.BrandContext
	if brand == nil {
		resolved, err := h.brandCtxSvc.Resolve(c.Request.Context(), req.BrandID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		brand = resolved
	}

	eval := h.brain.Evaluate(domain.EvaluationContent{
		Text:           req.Text,
		Tone:           req.Tone,
		VisualMetadata: req.VisualMetadata,
	}, brand)

	middleware.ObserveFidelityScore(eval.Score)

	common.SuccessResponse(c, eval, &common.Meta{BrandID: req.BrandID})
}

// respondServiceError maps service-layer sentinel errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, common.ErrBrandNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Brand not found", err)
	case errors.Is(err, common.ErrInvalidBrandGuide):
		common.ErrorResponse(c, http.StatusUnprocessableEntity, "Brand guide is malformed", err)
	case errors.Is(err, common.ErrPackageNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Content package not found", err)
	case errors.Is(err, common.ErrInvalidTransition):
		common.ErrorResponse(c, http.StatusConflict, "Status transition not allowed", err)
	case errors.Is(err, common.ErrEmptyLogEntry):
		common.ErrorResponse(c, http.StatusBadRequest, "Log entry requires agent and action", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
