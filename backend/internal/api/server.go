// Package api exposes the graph and per-session view state over HTTP and
// websockets.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/session"
	"maxim-atlas/backend/internal/state"
	apperrors "maxim-atlas/backend/pkg/errors"
)

const storeKey = "graph_store"

// Options configure the router
type Options struct {
	StaticDir      string
	SearchDebounce time.Duration
	Production     bool
}

// Server holds the handlers' dependencies
type Server struct {
	holder   *state.Holder
	sessions *session.Manager
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server over the load state and session manager
func NewServer(holder *state.Holder, sessions *session.Manager, opts Options, logger *zap.Logger) *Server {
	if opts.SearchDebounce < 0 {
		opts.SearchDebounce = constants.DefaultSearchDebounce
	}
	return &Server{
		holder:   holder,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	if s.opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", s.handleHealth)
	router.GET("/ws", s.handleWebsocket)

	api := router.Group("/api")
	api.Use(s.requireGraph())
	{
		api.GET("/graph", s.handleGraph)
		api.GET("/themes", s.handleThemes)
		api.GET("/stats", s.handleStats)
		api.GET("/nodes/:id", s.handleNode)
		api.GET("/search", s.handleSearch)

		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.POST("/sessions/:id/events", s.handleEvent)
		api.DELETE("/sessions/:id", s.handleDeleteSession)
	}

	if s.opts.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.opts.StaticDir))))
	}

	return router
}

// requireGraph answers 503 until the graph has loaded
func (s *Server) requireGraph() gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := s.holder.Store()
		if err != nil {
			snap := s.holder.Snapshot()
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":  err.Error(),
				"status": snap.Status,
			})
			return
		}
		c.Set(storeKey, store)
		c.Next()
	}
}

func storeFrom(c *gin.Context) *graph.Store {
	return c.MustGet(storeKey).(*graph.Store)
}

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	var (
		nodeNotFound    *apperrors.ErrNodeNotFound
		sessionNotFound *apperrors.ErrSessionNotFound
		unknownEvent    *apperrors.ErrUnknownEvent
		unknownTheme    *apperrors.ErrUnknownTheme
		invalidEvent    *apperrors.ErrInvalidEvent
	)
	switch {
	case errors.As(err, &nodeNotFound), errors.As(err, &sessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &unknownEvent), errors.As(err, &unknownTheme), errors.As(err, &invalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrGraphNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
