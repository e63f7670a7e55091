package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/person"
	"github.com/frahmantamala/hr-management/internal/salary"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
)

type RouterDeps struct {
	DB                *sql.DB
	AuthHandler       *auth.Handler
	DepartmentHandler *department.Handler
	PersonHandler     *person.Handler
	SalaryHandler     *salary.Handler
	RBAC              *auth.RBACAuthorization
	AllowedOrigins    string
	Logger            *slog.Logger
}

// RegisterAllRoutes wires every endpoint. Authentication is required for all
// resource routes; mutations on the org structure additionally require the
// Admin role, enumerated per endpoint here rather than scattered in handlers.
func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", deps.AuthHandler.Register)
			sr.Post("/login", deps.AuthHandler.Login)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			pr.Route("/persons", func(er chi.Router) {
				er.Get("/", deps.PersonHandler.GetAll)
				er.Get("/total", deps.PersonHandler.GetTotal)
				er.Get("/{id}", deps.PersonHandler.Get)
				er.Post("/", deps.PersonHandler.Create)
				er.Put("/{id}", deps.PersonHandler.Update)

				er.Group(func(ar chi.Router) {
					ar.Use(deps.RBAC.RequireAdmin())
					ar.Delete("/{id}", deps.PersonHandler.Delete)
					ar.Put("/{personId}/department", deps.DepartmentHandler.ChangePersonDepartment)
				})
			})

			pr.Route("/departments", func(er chi.Router) {
				er.Get("/", deps.DepartmentHandler.GetAll)
				er.Get("/total", deps.DepartmentHandler.GetTotal)
				er.Get("/{id}", deps.DepartmentHandler.Get)

				er.Group(func(ar chi.Router) {
					ar.Use(deps.RBAC.RequireAdmin())
					ar.Post("/", deps.DepartmentHandler.Create)
					ar.Put("/{id}", deps.DepartmentHandler.Rename)
					ar.Delete("/{id}", deps.DepartmentHandler.Delete)
				})
			})

			pr.Route("/salaries", func(er chi.Router) {
				er.Get("/{id}", deps.SalaryHandler.Get)

				er.Group(func(ar chi.Router) {
					ar.Use(deps.RBAC.RequireAdmin())
					ar.Put("/{id}", deps.SalaryHandler.Update)
				})
			})
		})
	})
}
