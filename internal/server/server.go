// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the condition overview pipeline over HTTP as JSON.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/pkg/types"
)

// Runner runs one condition overview.
type Runner interface {
	Run(ctx context.Context, condition string, model types.Model) types.OverviewResult
}

// OverviewRequest is the body of POST /api/condition-overview.
type OverviewRequest struct {
	Condition string `json:"condition"`
	Model     string `json:"model"`
}

// NewRouter returns the HTTP handler. defaultModel is used when a request
// omits the model. A non-nil metrics handler is served at /metrics.
func NewRouter(runner Runner, defaultModel types.Model, metrics http.Handler, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("server")

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/models", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"models": types.Models(), "default": defaultModel})
	})
	r.POST("/api/condition-overview", overviewHandler(runner, defaultModel))
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	return r
}

func overviewHandler(runner Runner, defaultModel types.Model) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OverviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		model := defaultModel
		if strings.TrimSpace(req.Model) != "" {
			m, err := types.ParseModel(req.Model)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			model = m
		}

		c.JSON(http.StatusOK, runner.Run(c.Request.Context(), req.Condition, model))
	}
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
