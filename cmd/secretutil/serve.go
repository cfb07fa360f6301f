package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrtlabs/secretjs-go/health"
	"github.com/scrtlabs/secretjs-go/internal/metrics"
	"github.com/scrtlabs/secretjs-go/restclient"
)

var (
	serveAddr        string
	serveMetricsOnly bool
	serveLCDURL      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP server exposing health and metrics endpoints",
	Long: `serve starts a long-running HTTP server for operating this client as
a sidecar or embedded service.

By default it exposes /health, /health/live, /health/ready,
/metrics (a JSON snapshot of in-process counters), and /metrics/prom
(Prometheus exposition format). With --metrics-only it instead runs a
bare Prometheus-only server with just a /metrics route.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on, as :port")
	serveCmd.Flags().BoolVar(&serveMetricsOnly, "metrics-only", false, "Serve only the raw Prometheus /metrics endpoint")
	serveCmd.Flags().StringVar(&serveLCDURL, "lcd-url", "", "LCD base URL to probe for the readiness check (optional)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveMetricsOnly {
		fmt.Fprintf(os.Stderr, "serving Prometheus metrics on %s/metrics\n", serveAddr)
		return metrics.StartServer(serveAddr)
	}

	checker := health.NewHealthChecker(5 * time.Second)
	if serveLCDURL != "" {
		rc := restclient.New(serveLCDURL, 5*time.Second)
		checker.RegisterCheck("lcd", health.LCDReachableCheck(func(ctx context.Context) error {
			var out json.RawMessage
			return rc.Get(ctx, "/node_info", &out)
		}))
	}

	port, err := strconv.Atoi(strings.TrimPrefix(serveAddr, ":"))
	if err != nil {
		return fmt.Errorf("--addr must be of the form :port, got %q: %w", serveAddr, err)
	}

	server := health.NewServer(checker, nil, port)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start health server: %w", err)
	}
	fmt.Fprintf(os.Stderr, "serving health and metrics on %s\n", serveAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
