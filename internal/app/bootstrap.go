package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"talentsift/internal/config"
	"talentsift/internal/delivery/http/handler"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/delivery/http/routes"
	"talentsift/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, starts the websocket hub and mounts all
// routes. The returned cleanup closes the container's connections.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}, c.Close, nil
}

// registerGlobalMiddleware mounts the access log outside the error
// middleware so the logged status is the one the client received.
func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	reg := routes.NewRegistry(routes.RegistryParams{
		Auth:       handler.NewAuthHandler(c.Auth),
		Resumes:    handler.NewResumeHandler(c.Resumes),
		Jobs:       handler.NewJobHandler(c.Jobs, c.JobImport),
		Match:      handler.NewMatchHandler(c.Matching),
		Screenings: handler.NewScreeningHandler(c.Screening),
		Skills:     handler.NewSkillHandler(c.Skills),
		Status:     handler.NewStatusHandler(c.Status),
		WSHandler:  ws.NewHandler(c.Hub, c.Logger),

		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT),
	})
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
