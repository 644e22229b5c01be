package app

import (
	"context"

	"yahoo-auth/internal/auth"
	"yahoo-auth/internal/auth/handler"
	"yahoo-auth/internal/auth/provider"
	"yahoo-auth/internal/auth/provider/yahoo"
	"yahoo-auth/internal/auth/resolver"
	"yahoo-auth/internal/auth/strategy"
	"yahoo-auth/internal/config"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	userResolver := resolver.NewMemoryResolver()

	verify := func(
		ctx context.Context,
		_ strategy.Tokens,
		profile *auth.Profile,
	) (any, string, error) {
		user, err := userResolver.Resolve(ctx, profile)
		if err != nil {
			return nil, "", err
		}
		return user, "", nil
	}

	strategyCfg := strategy.Config{
		ClientID:     cfg.YahooClientID,
		ClientSecret: cfg.YahooClientSecret,
	}

	var (
		yahooProvider *yahoo.Provider
		err           error
	)
	if cfg.YahooUseDiscovery {
		yahooProvider, err = yahoo.NewWithDiscovery(ctx, strategyCfg, verify)
	} else {
		yahooProvider, err = yahoo.New(strategyCfg, verify)
	}
	if err != nil {
		return nil, err
	}

	registry := provider.NewRegistry(
		yahooProvider,
	)

	authHandler := handler.NewHandler(registry)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, nil
}
