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

type ReviewerHandler struct {
	service service.DirectoryService
}

func NewReviewerHandler(service service.DirectoryService) *ReviewerHandler {
	return &ReviewerHandler{service: service}
}

func (h *ReviewerHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid reviewer registration", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewer, err := h.service.Register(ctx, service.RegisterReviewerParams{
		CommunityID:    req.CommunityID,
		Name:           req.Name,
		ExpertiseAreas: req.ExpertiseAreas,
		Role:           model.CulturalRole(req.Role),
		Languages:      req.Languages,
		AccuracyRating: req.AccuracyRating,
	})
	if err != nil {
		slog.WarnContext(ctx, "reviewer registration rejected", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reviewer)
}

func (h *ReviewerHandler) SetAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reviewer id"})
		return
	}

	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetAvailability(ctx, id, *req.Available); err != nil {
		if errors.Is(err, service.ErrReviewerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reviewer not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update availability", "error", err, "reviewer_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewer_id": id, "available": *req.Available})
}

func (h *ReviewerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	communityID, err := strconv.ParseInt(c.Query("community_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "community_id is required"})
		return
	}

	reviewers, err := h.service.List(ctx, communityID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reviewers", "error", err, "community_id", communityID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviewers"})
		return
	}

	c.JSON(http.StatusOK, dto.ListReviewersResponse{Reviewers: reviewers})
}
