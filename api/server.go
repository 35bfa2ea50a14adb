package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moyoez/sharekit/api/controllers"
	"github.com/moyoez/sharekit/api/middlewares"
	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/api/notifyhub"
	"github.com/moyoez/sharekit/tool"
)

// Server is the callback server: it receives bridge, web dialog and compose
// sheet results and serves local status routes.
type Server struct {
	port   int
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

// NewServer creates a server on port. Callback routes resolve against the
// backends installed with SetShareBackends.
func NewServer(port int) *Server {
	return &Server{port: port}
}

// SetShareBackends installs the bridge, web dialog and sheet resolvers.
func SetShareBackends(b models.BridgeResolver, w models.WebDialogResolver, s models.SheetResolver) {
	models.SetShareBackends(b, w, s)
}

// SetNotifyHub enables the notify websocket route.
func SetNotifyHub(hub *notifyhub.Hub) {
	models.SetNotifyHub(hub)
}

// Engine returns the router, building it on first use.
func (s *Server) Engine() *gin.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = setupRoutes()
	}
	return s.engine
}

func setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.AllowAllCORS())

	callbacks := engine.Group(tool.CallbackRoutePrefix)
	{
		callbacks.GET("/bridge/:actionId", controllers.BridgeCallbackGet)   // browser redirect
		callbacks.POST("/bridge/:actionId", controllers.BridgeCallbackPost) // peer app response
		callbacks.GET("/dialog/:id", controllers.WebDialogRedirect)
		callbacks.POST("/dialog/:id/fail", controllers.WebDialogFail)
		callbacks.POST("/dialog/:id/cancel", controllers.WebDialogCancel)
	}
	sheets := engine.Group(tool.CallbackRoutePrefix+"/sheet", middlewares.OnlyAllowLocal)
	{
		sheets.GET("/:id", controllers.SheetGet)
		sheets.POST("/:id/done", controllers.SheetDone)
		sheets.POST("/:id/cancel", controllers.SheetCancel)
	}
	self := engine.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.GET("/create-qr-code", controllers.GenerateQRCode) // QR code PNG (same params as api.qrserver.com)
		self.GET("/status", controllers.UserStatus)
		if hub := models.GetNotifyHub(); hub != nil {
			self.GET("/notify-ws", notifyhub.HandleNotifyWS(hub))
		}
	}
	engine.GET("/metrics", middlewares.OnlyAllowLocal, gin.WrapH(promhttp.Handler()))

	return engine
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	engine := s.Engine()

	s.mu.Lock()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: engine,
	}
	srv := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting callback server on http://0.0.0.0:%d", s.port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "callback server stopped")
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
