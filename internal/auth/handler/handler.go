package handler

import (
	"log"
	"net/http"

	"yahoo-auth/internal/auth"
	"yahoo-auth/internal/auth/provider"
	"yahoo-auth/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	providers *provider.Registry
}

func NewHandler(registry *provider.Registry) *Handler {
	return &Handler{
		providers: registry,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/:provider/token", h.token)

	for _, route := range r.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}
}

func (h *Handler) token(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown token provider",
		})
		return
	}

	outcome := p.Authenticate(c.Request.Context(), NewGinSource(c))

	switch outcome.Kind {
	case auth.OutcomeSuccess:
		log.Printf("[AUTH_SUCCESS] provider=%s ip=%s",
			providerName,
			c.ClientIP(),
		)
		c.JSON(http.StatusOK, gin.H{
			"status": "authenticated",
			"user":   outcome.User,
		})

	case auth.OutcomeFail:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": outcome.Info,
		})

	case auth.OutcomeError:
		logger.Error("token authentication errored", map[string]any{
			"provider": providerName,
			"error":    outcome.Err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "authentication failed",
		})
	}
}
