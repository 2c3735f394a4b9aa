// director-preview runs the preview HTTP server (spec §4.11, §6).
//
// Routes:
//
//	POST/GET /api/init     — build a fresh engine from a script
//	GET      /api/render   — JPEG bytes of a single frame
//	GET      /api/scenes   — timeline summary
//	GET/POST /api/file     — read/write within the allowed roots
//	POST     /api/export   — run the exporter
//	GET      /api/health   — liveness probe
//	GET      /api/metrics  — Prometheus metrics
//
// Port: 8420 (env: DIRECTOR_PREVIEW_PORT).
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/kinetic-motion/director/preview"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("[preview] cannot determine working directory: %v", err)
	}

	srv := preview.NewServer(cwd)
	addr := ":" + getEnv("DIRECTOR_PREVIEW_PORT", "8420")

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("[preview] starting on %s, allowed roots: %v", addr, preview.AllowedRoots(cwd))
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("[preview] server error: %v", err)
	}
}
