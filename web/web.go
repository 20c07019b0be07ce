// Package web provides the web server of the librarian application:
// HTTP serving, routing, embedded templates, and session setup.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/mhartmann/librarian/config"
	"github.com/mhartmann/librarian/logger"
	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/util/common"
	"github.com/mhartmann/librarian/util/random"
	"github.com/mhartmann/librarian/web/controller"
	"github.com/mhartmann/librarian/web/middleware"
	"github.com/mhartmann/librarian/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the librarian web server: gin engine, repositories, and the
// listener lifecycle.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	books *controller.BooksController

	store       *storage.Store
	userService *service.UserService
	bookService *service.BookService

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server rooted at the configured data folder.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	store := storage.NewStore(config.GetDataFolder())
	return &Server{
		store:       store,
		userService: service.NewUserService(store),
		bookService: service.NewBookService(store),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// sessionSecret returns the configured cookie-signing secret. When none is
// configured a volatile per-process secret is generated: sessions then do
// not survive a restart, but no baked-in secret ships with the binary.
func (s *Server) sessionSecret() string {
	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("LIBRARIAN_SESSION_SECRET is not set; generated a volatile session secret, sessions will not survive a restart")
	}
	return secret
}

// initRouter initializes gin, registers middleware, templates and
// controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(middleware.RequestID())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(config.GetName(), cookie.NewStore([]byte(s.sessionSecret()))))

	funcMap := template.FuncMap{}
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.userService, s.bookService)
	s.books = controller.NewBooksController(g, s.bookService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start bootstraps the backing tables and begins serving.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	// First-run bootstrap: missing tables are created, existing ones kept.
	if err := common.Combine(s.userService.EnsureSeeded(), s.bookService.EnsureSeeded()); err != nil {
		return err
	}

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
