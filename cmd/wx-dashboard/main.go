package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/wx-dashboard/internal/config"
	"github.com/ngmaloney/wx-dashboard/internal/feeds"
	"github.com/ngmaloney/wx-dashboard/internal/noaa"
	"github.com/ngmaloney/wx-dashboard/internal/observability"
	"github.com/ngmaloney/wx-dashboard/internal/ui"
)

var (
	logFile     string
	logLevel    string
	logFormat   string
	metricsAddr string
	layout      string
	countyMode  string
	hourlyOnly  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wx-dashboard",
		Short: "Terminal weather alert dashboard",
		Long: `wx-dashboard polls the National Weather Service for active alerts
and hourly conditions and shows them in a full-screen terminal dashboard.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDashboard(); err != nil {
				cmd.PrintErrln(fmt.Errorf("dashboard: %w", err))
				os.Exit(1)
			}
		},
	}

	// Flags shared by every command
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&layout, "layout", "", "Layout override (wide or stacked)")
	rootCmd.PersistentFlags().StringVar(&countyMode, "counties", "", "County detail override (toggle, always or never)")
	rootCmd.PersistentFlags().BoolVar(&hourlyOnly, "hourly-only", false, "Use the hourly forecast only, skipping gridpoint values")

	rootCmd.Flags().StringVar(&logFile, "log-file", "wx-dashboard.log", "Log file path (the dashboard owns the terminal)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /healthz, /readyz and /metrics on this address")

	addListCmd(rootCmd)
	addConditionsCmd(rootCmd)
	addWatchCmd(rootCmd)
	addCountiesCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig applies the command line overrides to the default configuration
func buildConfig(layout, countyMode string, hourlyOnly bool) (*config.Config, error) {
	cfg := config.Default()
	if layout != "" {
		cfg.View.Layout = config.LayoutMode(layout)
	}
	if countyMode != "" {
		cfg.View.CountyDetail = config.CountyDetail(countyMode)
	}
	if hourlyOnly {
		cfg.UseGridpointValues = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSources wires the NWS clients into the feed adapters. metrics may be nil.
func newSources(cfg *config.Config, logger logrus.FieldLogger, metrics *observability.Metrics, clock clockwork.Clock) (*feeds.AlertSource, *feeds.ConditionsSource) {
	opts := []noaa.Option{
		noaa.WithBaseURL(cfg.APIBase),
		noaa.WithUserAgent(cfg.UserAgent),
		noaa.WithTimeout(cfg.HTTPTimeout),
	}
	feedOpts := []feeds.Option{
		feeds.WithLogger(logger),
		feeds.WithMetrics(metrics),
		feeds.WithClock(clock),
	}

	alertSrc := feeds.NewAlertSource(noaa.NewAlertClient(cfg.AlertsURL, opts...), feedOpts...)
	condSrc := feeds.NewConditionsSource(noaa.NewForecastClient(opts...), feeds.ConditionsOptions{
		Zone:               cfg.Location(),
		ForecastHours:      cfg.ForecastHours,
		UseGridpointValues: cfg.UseGridpointValues,
	}, feedOpts...)

	return alertSrc, condSrc
}

// runDashboard runs the full-screen dashboard until the user quits
func runDashboard() error {
	cfg, err := buildConfig(layout, countyMode, hourlyOnly)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	logger, err := observability.NewLogger(logLevel, logFormat, f)
	if err != nil {
		return err
	}

	var metrics *observability.Metrics
	if metricsAddr != "" {
		metrics = observability.NewMetrics()
	}

	clock := clockwork.NewRealClock()
	alertSrc, condSrc := newSources(cfg, logger, metrics, clock)

	if metricsAddr != "" {
		srv := observability.NewServer(metricsAddr, alertSrc, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.WithError(err).Warn("metrics server shutdown")
			}
		}()
	}

	logger.WithFields(logrus.Fields{
		"offices":   len(cfg.Offices),
		"locations": len(cfg.Locations),
		"layout":    cfg.View.Layout,
	}).Info("starting dashboard")

	model := ui.NewModel(cfg, ui.Deps{
		Alerts:     alertSrc,
		Conditions: condSrc,
		Clock:      clock,
		Logger:     logger,
		Metrics:    metrics,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
