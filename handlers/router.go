package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"accountsvc/middleware"
	"accountsvc/services"
)

// Router wires the full HTTP surface.
func Router(accounts *services.Accounts, log zerolog.Logger) *gin.Engine {
	h := New(accounts, log)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	r.GET("/health", h.Health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	me := r.Group("/me", middleware.AuthRequired(accounts))
	{
		me.GET("", h.Me)
		me.POST("/upgrade", h.Upgrade)
	}

	return r
}
