package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/handler"
)

func InsightRouter(rg *gin.RouterGroup, h *handler.InsightHandler) {
	rg.POST("", h.Submit)
	// "validated" before ":id" so gin doesn't treat it as an id.
	rg.GET("/validated", h.ListValidated)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/metrics", h.GetMetrics)
}

func AssignmentRouter(rg *gin.RouterGroup, h *handler.ResponseHandler) {
	rg.POST("/:id/start", h.Start)
	rg.POST("/:id/response", h.Submit)
	rg.GET("/:id/response", h.Get)
}
