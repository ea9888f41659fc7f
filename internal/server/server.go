// Package server exposes the questionnaire and predictor over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/store"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	assessor    assessment.Assessor
	assessments store.AssessmentRepo
	events      store.EventRepo
	engine      *gin.Engine
}

// Options configures a Server.
type Options struct {
	// Quiet disables gin's request logger.
	Quiet bool
}

// New builds the router. events may be nil.
func New(a assessment.Assessor, assessments store.AssessmentRepo, events store.EventRepo, opts Options) *Server {
	s := &Server{
		assessor:    a,
		assessments: assessments,
		events:      events,
	}

	r := gin.New()
	if !opts.Quiet {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/questions", s.listQuestions)
		v1.POST("/assessments", s.createAssessment)
		v1.GET("/assessments", s.listAssessments)
		v1.GET("/assessments/:id", s.getAssessment)
		v1.GET("/assessments/:id/report.pdf", s.getReport)
	}
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorJSON(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"message": msg})
}
