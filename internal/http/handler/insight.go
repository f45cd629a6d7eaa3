package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/dto"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/service"
)

type InsightHandler struct {
	service service.ValidationService
}

func NewInsightHandler(service service.ValidationService) *InsightHandler {
	return &InsightHandler{service: service}
}

func (h *InsightHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid insight submission", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.SubmitInsightParams{
		CommunityID:       req.CommunityID,
		Category:          model.InsightCategory(req.Category),
		Title:             req.Title,
		Description:       req.Description,
		Content:           req.Content,
		SourceDocumentIDs: req.SourceDocumentIDs,
		AIConfidence:      req.AIConfidence,
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		traceID := spanCtx.TraceID().String()
		params.TraceID = &traceID
	}

	result, err := h.service.SubmitInsight(ctx, params)
	if err != nil {
		// Submission-time validation failures (bad category, malformed
		// content union, out-of-range confidence) are the caller's to fix.
		slog.WarnContext(ctx, "insight submission rejected", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitInsightResponse{
		Insight:           result.Insight,
		Assignments:       result.Assignments,
		CulturalEscalated: result.Escalated,
	})
}

func (h *InsightHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insight id"})
		return
	}

	insight, err := h.service.GetInsight(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrInsightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "insight not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch insight", "error", err, "insight_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch insight"})
		return
	}

	c.JSON(http.StatusOK, insight)
}

func (h *InsightHandler) GetMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insight id"})
		return
	}

	metrics, err := h.service.GetMetrics(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrInsightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metrics not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch metrics", "error", err, "insight_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *InsightHandler) ListValidated(c *gin.Context) {
	ctx := c.Request.Context()

	var communityID *int64
	if raw := c.Query("community_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community_id"})
			return
		}
		communityID = &id
	}

	var category *model.InsightCategory
	if raw := c.Query("category"); raw != "" {
		cat := model.InsightCategory(raw)
		category = &cat
	}

	insights, err := h.service.ListValidated(ctx, communityID, category)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list validated insights", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list validated insights"})
		return
	}

	c.JSON(http.StatusOK, dto.ListInsightsResponse{Insights: insights})
}
