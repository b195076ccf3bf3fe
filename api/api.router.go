package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vaudience/fleethub/api/middleware"
	"github.com/vaudience/fleethub/api/resources"
	"github.com/vaudience/fleethub/internal/fleetservice"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	resources *resources.Resources
}

func NewRouter(svc *fleetservice.FleetService, authModes string) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAuthMiddleware(svc.Users, svc.Credentials, svc.Tokens, authModes),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", r.resources.Auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", r.resources.Auth.ResetPassword).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Profile
	protected.HandleFunc("/profile", r.resources.Profile.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.resources.Profile.UpdateProfile).Methods(http.MethodPut)

	// Systems
	systems := protected.PathPrefix("/systems").Subrouter()
	systems.HandleFunc("", r.resources.Systems.ListSystems).Methods(http.MethodGet)
	systems.HandleFunc("", r.resources.Systems.CreateSystem).Methods(http.MethodPost)
	systems.HandleFunc("/{id}", r.resources.Systems.GetSystem).Methods(http.MethodGet)
	systems.HandleFunc("/{id}", r.resources.Systems.UpdateSystem).Methods(http.MethodPut)
	systems.HandleFunc("/{id}", r.resources.Systems.DeleteSystem).Methods(http.MethodDelete)

	// Devices
	devices := protected.PathPrefix("/devices").Subrouter()
	devices.HandleFunc("", r.resources.Devices.ListDevices).Methods(http.MethodGet)
	devices.HandleFunc("", r.resources.Devices.RegisterDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}", r.resources.Devices.GetDevice).Methods(http.MethodGet)
	devices.HandleFunc("/{id}", r.resources.Devices.UpdateDevice).Methods(http.MethodPut)
	devices.HandleFunc("/{id}", r.resources.Devices.DeleteDevice).Methods(http.MethodDelete)
	devices.HandleFunc("/{id}/readings", r.resources.Telemetry.GetDeviceReadings).Methods(http.MethodGet)

	protected.HandleFunc("/dashboard", r.resources.Devices.Dashboard).Methods(http.MethodGet)

	// Device inputs (threshold rules)
	inputs := protected.PathPrefix("/device-inputs").Subrouter()
	inputs.HandleFunc("", r.resources.DeviceInputs.ListDeviceInputs).Methods(http.MethodGet)
	inputs.HandleFunc("", r.resources.DeviceInputs.CreateDeviceInput).Methods(http.MethodPost)
	inputs.HandleFunc("/{id}", r.resources.DeviceInputs.GetDeviceInput).Methods(http.MethodGet)
	inputs.HandleFunc("/{id}", r.resources.DeviceInputs.UpdateDeviceInput).Methods(http.MethodPut)
	inputs.HandleFunc("/{id}", r.resources.DeviceInputs.DeleteDeviceInput).Methods(http.MethodDelete)

	// Notifications
	protected.HandleFunc("/alerts", r.resources.Notifications.ListAlerts).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", r.resources.Notifications.ListNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", r.resources.Notifications.MarkRead).Methods(http.MethodPut)

	// Filtered listings
	protected.HandleFunc("/filter/devices", r.resources.Filters.FilterDevices).Methods(http.MethodGet)
	protected.HandleFunc("/filter/device-inputs", r.resources.Filters.FilterDeviceInputs).Methods(http.MethodGet)

	// Telemetry ingestion
	protected.HandleFunc("/iot/data", r.resources.Telemetry.IngestReading).Methods(http.MethodPost)

	// Admin (authenticated + admin flag)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(r.auth.RequireAdmin)
	admin.HandleFunc("/users", r.resources.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.resources.Admin.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.resources.Admin.DeleteUser).Methods(http.MethodDelete)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
