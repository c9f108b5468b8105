package server

import (
	"net/http"
	"time"

	"media-gallery/internal/config"
)

func New(port string, handler http.Handler, cfg *config.ServerConfig) *http.Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg != nil {
		srv.ReadTimeout = cfg.ReadTimeout
		srv.WriteTimeout = cfg.WriteTimeout
		srv.IdleTimeout = cfg.IdleTimeout
	}
	return srv
}
