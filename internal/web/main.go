// Package web implements the Fiber web service: template engine, static
// assets, access logging and route registration for every handler.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	fiberlogger "github.com/memoriam-dev/memoriam/internal/logger/adapter/fiber"
	admindashboard "github.com/memoriam-dev/memoriam/internal/web/handler/admin/dashboard"
	adminsettings "github.com/memoriam-dev/memoriam/internal/web/handler/admin/settings"
	admintribute "github.com/memoriam-dev/memoriam/internal/web/handler/admin/tribute"
	"github.com/memoriam-dev/memoriam/internal/web/handler/home"
	"github.com/memoriam-dev/memoriam/internal/web/handler/login"
	"github.com/memoriam-dev/memoriam/internal/web/handler/logout"
	"github.com/memoriam-dev/memoriam/internal/web/handler/message"
	"github.com/memoriam-dev/memoriam/internal/web/handler/register"
	"github.com/memoriam-dev/memoriam/internal/web/handler/tribute"
	"github.com/memoriam-dev/memoriam/internal/web/upload"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: drain before stopping so a LB
	// can remove this instance from its active targets.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: waiting %d seconds before closing the listener",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "Memoriam",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// uploaded files live on the local filesystem under the public dir
	app.Static(upload.URLPrefix, filepath.Join(cfg.Webserver.PublicDir, "uploads"))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	service.alive.Store(true)

	// liveness endpoint for load balancers, reports 503 while draining
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("ok")
	})

	// init handlers (they register their own routes, admin handlers attach
	// the admin gate themselves)
	initHandlers(app, cfg, db)

	return service
}

func initHandlers(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	home.Handler.Init(app, cfg, db)
	register.Handler.Init(app, cfg, db)
	login.Handler.Init(app, cfg, db)
	logout.Handler.Init(app, cfg)
	tribute.Handler.Init(app, cfg, db)
	message.Handler.Init(app, cfg, db)
	admindashboard.Handler.Init(app, cfg, db)
	adminsettings.Handler.Init(app, cfg, db)
	admintribute.Handler.Init(app, cfg, db)
}
