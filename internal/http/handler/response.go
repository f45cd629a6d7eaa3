package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/dto"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/service"
)

type ResponseHandler struct {
	service service.ValidationService
}

func NewResponseHandler(service service.ValidationService) *ResponseHandler {
	return &ResponseHandler{service: service}
}

// Start flips an assignment to in_progress when the reviewer opens it.
func (h *ResponseHandler) Start(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	assignment, err := h.service.StartReview(ctx, assignmentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		case errors.Is(err, service.ErrAssignmentCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "assignment already completed"})
		default:
			slog.ErrorContext(ctx, "failed to start review", "error", err, "assignment_id", assignmentID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start review"})
		}
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *ResponseHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	response, err := h.service.GetResponse(ctx, assignmentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResponseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "response not found"})
		default:
			slog.ErrorContext(ctx, "failed to fetch response", "error", err, "assignment_id", assignmentID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch response"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ResponseHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	var req dto.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid response submission", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := &model.ReviewResponse{
		AccuracyScore:     req.AccuracyScore,
		RelevanceScore:    req.RelevanceScore,
		CompletenessScore: req.CompletenessScore,
		CulturalScore:     req.CulturalScore,
		OverallRating:     req.OverallRating,
		Feedback:          req.Feedback,
		Concerns:          req.Concerns,
		Suggestions:       req.Suggestions,
		Corrections:       req.Corrections,
		Recommendation:    model.Recommendation(req.Recommendation),
		Confidence:        req.Confidence,
	}

	result, err := h.service.SubmitResponse(ctx, assignmentID, response)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidResponse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAssignmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		case errors.Is(err, service.ErrAssignmentCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "assignment already completed"})
		case errors.Is(err, service.ErrInsightNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "insight not found"})
		default:
			slog.ErrorContext(ctx, "failed to submit response", "error", err, "assignment_id", assignmentID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit response"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitResponseResponse{
		Response:      result.Response,
		PanelComplete: result.PanelComplete,
		Metrics:       result.Metrics,
		Dispatched:    result.Dispatched,
	})
}
