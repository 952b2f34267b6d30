package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sgonzalez/retail-management/internal/attendance"
	"github.com/sgonzalez/retail-management/internal/auth"
	"github.com/sgonzalez/retail-management/internal/client"
	"github.com/sgonzalez/retail-management/internal/product"
	"github.com/sgonzalez/retail-management/internal/purchase"
	"github.com/sgonzalez/retail-management/internal/schedule"
	"github.com/sgonzalez/retail-management/internal/settings"
	"github.com/sgonzalez/retail-management/internal/transport/middleware"
	"github.com/sgonzalez/retail-management/internal/transport/swagger"
	"github.com/sgonzalez/retail-management/internal/user"
)

type Handlers struct {
	Auth       *auth.Handler
	Attendance *attendance.Handler
	Product    *product.Handler
	Client     *client.Handler
	Purchase   *purchase.Handler
	User       *user.Handler
	Schedule   *schedule.Handler
	Settings   *settings.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Metrics)

	// Served outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid token.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/attendance", func(ar chi.Router) {
				ar.Post("/entry", h.Attendance.RecordEntry)
				ar.Post("/exit", h.Attendance.RecordExit)
				ar.Post("/", h.Attendance.RecordManual)
				ar.Get("/", h.Attendance.ListMine)
				ar.Get("/overtime", h.Attendance.OvertimeMine)
			})

			pr.Route("/products", func(pdr chi.Router) {
				pdr.Get("/", h.Product.List)
				pdr.Get("/barcode/{barcode}", h.Product.GetByBarcode)
				pdr.Get("/{id}", h.Product.Get)
			})

			pr.Get("/clients", h.Client.List)
			pr.Get("/clients/{id}", h.Client.Get)

			pr.Route("/purchases", func(pur chi.Router) {
				pur.Post("/", h.Purchase.RecordPurchase)
				pur.Get("/", h.Purchase.List)
				pur.Get("/{id}", h.Purchase.Get)
			})

			pr.Get("/users/me", h.User.GetProfile)
			pr.Put("/users/me", h.User.UpdateProfile)

			pr.Post("/schedules", h.Schedule.Create)
			pr.Get("/schedules", h.Schedule.ListMine)

			// Admin-only surface.
			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)

				ar.Post("/admin/attendance", h.Attendance.RecordForEmployee)
				ar.Put("/attendance/{id}/confirm", h.Attendance.Confirm)
				ar.Get("/admin/attendance", h.Attendance.ListAll)
				ar.Get("/admin/overtime", h.Attendance.OvertimeAll)

				ar.Post("/products", h.Product.Create)
				ar.Put("/products/{id}", h.Product.Update)
				ar.Delete("/products/{id}", h.Product.Delete)
				ar.Get("/admin/products/alerts", h.Product.LowStockAlerts)
				ar.Get("/admin/inventory/alert-history", h.Product.AlertHistory)

				ar.Post("/clients", h.Client.Create)

				ar.Put("/purchases/{id}/approve", h.Purchase.Approve)
				ar.Get("/admin/purchases/pending", h.Purchase.ListPending)
				ar.Get("/admin/purchases/stats", h.Purchase.Stats)

				ar.Post("/returns", h.Purchase.RecordReturn)
				ar.Get("/returns", h.Purchase.ListReturns)

				ar.Get("/users", h.User.List)
				ar.Get("/users/{id}", h.User.Get)
				ar.Put("/users/{id}", h.User.Update)
				ar.Delete("/users/{id}", h.User.Delete)
				ar.Put("/users/{id}/role", h.User.AssignRole)
				ar.Put("/users/{id}/permissions", h.User.UpdatePermissions)

				ar.Get("/admin/schedules", h.Schedule.ListAll)
				ar.Get("/admin/schedules/{userID}", h.Schedule.ListForUser)

				ar.Get("/admin/settings", h.Settings.Get)
				ar.Put("/admin/settings", h.Settings.Upsert)
			})
		})
	})
}
