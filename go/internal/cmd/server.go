package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(services *Services, logger zerolog.Logger) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler: h2c.NewHandler(newHandler(services, logger), &http2.Server{}),
	}
}

func newHandler(services *Services, logger zerolog.Logger) http.Handler {
	router := mux.NewRouter()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	registerServices(router, services)
	setupHealthCheck(router, logger)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return c.Handler(router)
}

func registerServices(router *mux.Router, services *Services) {
	services.Teams.Register(router)
	services.Imports.Register(router)
}

func setupHealthCheck(router *mux.Router, logger zerolog.Logger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error().Err(err).Msg("failed to write health check response")
		}
	}).Methods(http.MethodGet, http.MethodHead)
}
