package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/handler"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/middleware"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/service"
)

type RouterConfig struct {
	AdminAPIKey string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	validation := services.Validation()

	v1 := router.Group("/api/v1")
	{
		insightHandler := handler.NewInsightHandler(validation)
		InsightRouter(v1.Group("/insights"), insightHandler)

		responseHandler := handler.NewResponseHandler(validation)
		AssignmentRouter(v1.Group("/assignments"), responseHandler)

		reviewerHandler := handler.NewReviewerHandler(services.Directory())
		reviewers := v1.Group("/reviewers")
		reviewers.Use(middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
		ReviewerRouter(reviewers, reviewerHandler)
	}
}
