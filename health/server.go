// Copyright (C) 2025 scrtlabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/scrtlabs/secretjs-go/internal/logger"
	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

// Server exposes an HTTP surface over a HealthChecker: liveness and
// readiness probes for orchestrators, plus the client's in-process
// MetricsCollector snapshot and the raw Prometheus exposition format.
type Server struct {
	checker *HealthChecker
	logger  logger.Logger
	port    int
	server  *http.Server
}

// NewServer creates a new health/metrics HTTP server.
func NewServer(checker *HealthChecker, log logger.Logger, port int) *Server {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	return &Server{checker: checker, logger: log, port: port}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/live", s.handleLiveness)
	mux.HandleFunc("/health/ready", s.handleReadiness)
	mux.HandleFunc("/metrics", s.handleMetricsSnapshot)
	mux.Handle("/metrics/prom", metrics.Handler())

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("Starting health check server")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Health check server error: " + err.Error())
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.checker.GetSystemHealth(r.Context())

	switch status.Status {
	case StatusUnhealthy:
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusOK)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// handleReadiness reports ready only if every registered check passes;
// unlike handleHealth there is no notion of a single critical
// component here, since callers register exactly the checks (I/O
// pubkey, LCD reachability) that matter for their deployment.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	status := s.checker.GetSystemHealth(r.Context())
	ready := status.Status != StatusUnhealthy

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    status.Status,
	}
	if !ready {
		failed := make([]string, 0, len(status.Checks))
		for name, res := range status.Checks {
			if res.Status == StatusUnhealthy {
				failed = append(failed, name)
			}
		}
		response["failed_checks"] = failed
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetricsSnapshot serves the in-process MetricsCollector as
// JSON, a cheap human-readable complement to /metrics/prom's
// Prometheus exposition format.
func (s *Server) handleMetricsSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := metrics.GetGlobalCollector().GetSnapshot()

	response := map[string]interface{}{
		"timestamp": snapshot.Timestamp.UTC().Format(time.RFC3339),
		"uptime":    snapshot.Uptime.String(),
		"counters": map[string]int64{
			"seals":             snapshot.SealCount,
			"opens":             snapshot.OpenCount,
			"successful_opens":  snapshot.SuccessfulOpens,
			"failed_opens":      snapshot.FailedOpens,
			"code_hash_lookups": snapshot.CodeHashLookups,
			"cache_hits":        snapshot.CacheHits,
			"cache_misses":      snapshot.CacheMisses,
			"lcd_calls":         snapshot.LCDCalls,
			"lcd_errors":        snapshot.LCDErrors,
		},
		"timings_us": map[string]interface{}{
			"avg_seal":      snapshot.AvgSealTime,
			"avg_open":      snapshot.AvgOpenTime,
			"avg_lcd":       snapshot.AvgLCDTime,
			"avg_code_hash": snapshot.AvgCodeHashTime,
			"p95_seal":      snapshot.P95SealTime,
			"p95_open":      snapshot.P95OpenTime,
			"p95_lcd":       snapshot.P95LCDTime,
			"p95_code_hash": snapshot.P95CodeHashTime,
		},
		"rates": map[string]float64{
			"cache_hit_rate":    snapshot.GetCacheHitRate(),
			"open_success_rate": snapshot.GetOpenSuccessRate(),
			"lcd_error_rate":    snapshot.GetLCDErrorRate(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}
