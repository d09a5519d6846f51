package http

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/auth"
	"github.com/drew2323/v3trading/internal/cache"
	"github.com/drew2323/v3trading/internal/ledger"
	"github.com/drew2323/v3trading/internal/positions"
	"github.com/drew2323/v3trading/internal/stream"
)

const (
	serviceName    = "V3Trading API"
	serviceVersion = "0.1.0"
)

type Server struct {
	R            *gin.Engine
	Ledger       *ledger.Ledger
	Positions    *positions.Service
	Auth         *auth.Service
	Hub          *stream.Hub
	Pages        *cache.Pages
	Logger       *zap.Logger
	CookieSecure bool
}

// Deps are the collaborators of the HTTP layer. Hub and Pages are optional.
type Deps struct {
	Ledger       *ledger.Ledger
	Positions    *positions.Service
	Auth         *auth.Service
	Hub          *stream.Hub
	Pages        *cache.Pages
	Logger       *zap.Logger
	CookieSecure bool
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewServer wires the router, services and middleware.
func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("ip", cn.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	s := &Server{
		R:            g,
		Ledger:       d.Ledger,
		Positions:    d.Positions,
		Auth:         d.Auth,
		Hub:          d.Hub,
		Pages:        d.Pages,
		Logger:       logger,
		CookieSecure: d.CookieSecure,
	}

	g.GET("/", func(cn *gin.Context) {
		cn.JSON(http.StatusOK, gin.H{"message": serviceName, "version": serviceVersion})
	})
	g.GET("/health", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	requireUser := auth.Required(s.Auth)

	sess := g.Group("/api/auth")
	sess.GET("/me", requireUser, s.getMe)
	sess.POST("/logout", s.logout)

	api := g.Group("/api", requireUser)
	api.GET("/trades", s.getTrades)
	api.GET("/trades/:id", s.getTrade)
	api.POST("/trades", s.createTrade)
	api.PATCH("/trades/:id/cancel", s.cancelTrade)
	api.GET("/positions", s.getPositions)
	api.GET("/positions/:symbol", s.getPosition)
	api.POST("/positions/:symbol/close", s.closePosition)

	if s.Hub != nil {
		g.GET("/ws", requireUser, func(cn *gin.Context) { s.Hub.ServeWS(cn.Writer, cn.Request) })
	}

	return s
}

// Handler puts CORS in front of the router. Credentials are allowed so the
// session cookie reaches the API from the listed origins.
func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(s.R)
}

// --- Helpers ---

func (s *Server) internalError(c *gin.Context, where string, err error) {
	s.Logger.Error("internal_error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusInternalServerError, apiError{Code: "internal_server_error", Message: "internal server error"})
}

func (s *Server) validationError(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, apiError{Code: "validation_error", Message: msg})
}

// writeError maps ledger and position errors onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, where string, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, apiError{Code: "not_found", Message: "Trade not found"})
	case errors.Is(err, positions.ErrNotFound):
		c.JSON(http.StatusNotFound, apiError{Code: "not_found", Message: "Position not found"})
	case errors.Is(err, ledger.ErrCannotCancelExecuted):
		c.JSON(http.StatusBadRequest, apiError{Code: "illegal_transition", Message: "Cannot cancel executed trade"})
	case errors.Is(err, ledger.ErrAlreadyCancelled):
		c.JSON(http.StatusBadRequest, apiError{Code: "already_cancelled", Message: "Trade is already cancelled"})
	case errors.Is(err, ledger.ErrIllegalTransition):
		c.JSON(http.StatusBadRequest, apiError{Code: "illegal_transition", Message: err.Error()})
	case errors.Is(err, ledger.ErrValidation):
		s.validationError(c, err.Error())
	default:
		s.internalError(c, where, err)
	}
}

// --- Session ---

func (s *Server) getMe(c *gin.Context) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apiError{Code: "unauthenticated", Message: "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", s.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
