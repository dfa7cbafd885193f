// Package routes wires every handler onto the fiber app. The layout is
// /health and /ws/screenings at the root, everything else under /api/v1
// with the auth group public and the rest behind the access token.
package routes

import (
	"talentsift/internal/delivery/http/handler"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	auth       *handler.AuthHandler
	resumes    *handler.ResumeHandler
	jobs       *handler.JobHandler
	match      *handler.MatchHandler
	screenings *handler.ScreeningHandler
	skills     *handler.SkillHandler
	status     *handler.StatusHandler
	wsHandler  *ws.Handler

	authMw *middleware.AuthMiddleware
}

type RegistryParams struct {
	Auth       *handler.AuthHandler
	Resumes    *handler.ResumeHandler
	Jobs       *handler.JobHandler
	Match      *handler.MatchHandler
	Screenings *handler.ScreeningHandler
	Skills     *handler.SkillHandler
	Status     *handler.StatusHandler
	WSHandler  *ws.Handler

	AuthMiddleware *middleware.AuthMiddleware
}

func NewRegistry(p RegistryParams) *Registry {
	return &Registry{
		auth:       p.Auth,
		resumes:    p.Resumes,
		jobs:       p.Jobs,
		match:      p.Match,
		screenings: p.Screenings,
		skills:     p.Skills,
		status:     p.Status,
		wsHandler:  p.WSHandler,
		authMw:     p.AuthMiddleware,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.status.RegisterRoutes(app)
	if r.wsHandler != nil {
		app.Get("/ws/screenings", r.wsHandler.HandleScreeningsWS)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.auth.RegisterRoutes(v1.Group("/auth"))

	protected := v1.Group("", r.authMw.Middleware())

	resumes := protected.Group("/resumes")
	r.resumes.RegisterRoutes(resumes)
	r.match.RegisterResumeRoutes(resumes)

	jobs := protected.Group("/jobs")
	r.jobs.RegisterRoutes(jobs)
	r.screenings.RegisterJobRoutes(jobs)

	r.match.RegisterRoutes(protected.Group("/match"))
	r.screenings.RegisterRoutes(protected.Group("/screenings"))
	r.skills.RegisterRoutes(protected.Group("/skills"))
}
