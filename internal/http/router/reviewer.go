package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/http/handler"
)

func ReviewerRouter(rg *gin.RouterGroup, h *handler.ReviewerHandler) {
	rg.POST("", h.Register)
	rg.GET("", h.List)
	rg.PATCH("/:id/availability", h.SetAvailability)
}
