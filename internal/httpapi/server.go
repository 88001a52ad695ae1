// Package httpapi exposes the marketplace service as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skillora/internal/market"
)

const sessionKey = "skillora.session"

// Server serves the marketplace API on top of a Service.
type Server struct {
	svc    *market.Service
	logger market.Logger
}

// NewServer creates a new Server.
func NewServer(svc *market.Service, logger market.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Router builds the gin engine with every route registered under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.loggingMiddleware())

	api := r.Group("/api")
	api.Use(s.sessionMiddleware())
	s.registerSessionRoutes(api)
	s.registerJobRoutes(api)
	s.registerContractRoutes(api)
	s.registerMessageRoutes(api)
	s.registerNotificationRoutes(api)
	return r
}

// loggingMiddleware logs one line per request. 5xx responses log at error
// level and 4xx at warn.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"client_ip", c.ClientIP(),
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"duration", time.Since(start).String(),
			"size_bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error("request completed", args...)
		case status >= http.StatusBadRequest:
			s.logger.Warn("request completed", args...)
		default:
			s.logger.Info("request completed", args...)
		}
	}
}

// sessionMiddleware resolves the acting session from the persisted user.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.svc.Session(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// session returns the session resolved for this request; nil is anonymous.
func session(c *gin.Context) *market.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*market.Session)
	return sess
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// fail maps a service error to a response.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, market.ErrInvalidRole):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		errorJSON(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		errorJSON(c, http.StatusInternalServerError, "internal error")
	}
}

// bind decodes the JSON body into obj, answering 400 on failure.
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(err)
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindOptional is bind for bodies whose every field is optional: an empty
// body leaves obj at its zero value.
func bindOptional(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err)
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
