package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/wx-dashboard/internal/alerts"
	"github.com/ngmaloney/wx-dashboard/internal/config"
	"github.com/ngmaloney/wx-dashboard/internal/countylookup"
	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/observability"
	"github.com/ngmaloney/wx-dashboard/internal/poller"
)

// setup builds the configuration and a stderr logger for the headless commands
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger) {
	cfg, err := buildConfig(layout, countyMode, hourlyOnly)
	if err != nil {
		cmd.PrintErrln(err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(logLevel, logFormat, cmd.ErrOrStderr())
	if err != nil {
		cmd.PrintErrln(err)
		os.Exit(1)
	}
	return cfg, logger
}

// addListCmd adds a command that prints the filtered alerts once
func addListCmd(rootCmd *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active alerts for the monitored region",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			clock := clockwork.NewRealClock()
			alertSrc, _ := newSources(cfg, logger, nil, clock)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
			defer cancel()

			filtered := alerts.Filter(alertSrc.Fetch(ctx), clock.Now(), alerts.NewRegion(cfg.Offices))
			printAlerts(cmd.OutOrStdout(), filtered, cfg.Location())
			printCounts(cmd.OutOrStdout(), alerts.Count(filtered))
		},
	}
	rootCmd.AddCommand(listCmd)
}

// addConditionsCmd adds a command that prints every location's conditions once
func addConditionsCmd(rootCmd *cobra.Command) {
	conditionsCmd := &cobra.Command{
		Use:   "conditions",
		Short: "Show current and upcoming conditions for each location",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			_, condSrc := newSources(cfg, logger, nil, clockwork.NewRealClock())

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout)
			defer cancel()

			conditions := condSrc.Fetch(ctx, cfg.Locations)
			if len(conditions) == 0 {
				cmd.PrintErrln("No conditions available")
				os.Exit(1)
			}
			printConditions(cmd.OutOrStdout(), conditions, cfg.Location())
		},
	}
	rootCmd.AddCommand(conditionsCmd)
}

// addWatchCmd adds a command that polls alerts and prints one summary line per poll
func addWatchCmd(rootCmd *cobra.Command) {
	var interval time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll alerts and print a summary line on every refresh",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			if interval > 0 {
				cfg.AlertRefresh = interval
			}

			clock := clockwork.NewRealClock()
			alertSrc, _ := newSources(cfg, logger, nil, clock)
			region := alerts.NewRegion(cfg.Offices)
			zone := cfg.Location()
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := poller.New("alerts", cfg.AlertRefresh, func(ctx context.Context, now time.Time) {
				fetchCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
				defer cancel()

				filtered := alerts.Filter(alertSrc.Fetch(fetchCtx), clock.Now(), region)
				fmt.Fprintln(out, summaryLine(now.In(zone), filtered))
			}, clock, logger)

			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				cmd.PrintErrln(err)
				os.Exit(1)
			}
		},
	}
	watchCmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Poll interval (defaults to the configured alert refresh)")
	rootCmd.AddCommand(watchCmd)
}

// addCountiesCmd adds a command that prints an office's county allow-list
func addCountiesCmd(rootCmd *cobra.Command) {
	var (
		shapefile string
		url       string
		dataDir   string
		cwa       string
		state     string
	)

	countiesCmd := &cobra.Command{
		Use:   "counties",
		Short: "Print the counties an NWS office serves, from the county shapefile",
		Run: func(cmd *cobra.Command, args []string) {
			_, logger := setup(cmd)

			path := shapefile
			if path == "" {
				var err error
				path, err = countylookup.Fetch(cmd.Context(), url, dataDir, logger)
				if err != nil {
					cmd.PrintErrln(err)
					os.Exit(1)
				}
			}

			counties, err := countylookup.Load(path)
			if err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}

			names := countylookup.ForOffice(counties, cwa, state)
			if len(names) == 0 {
				cmd.PrintErrln(fmt.Sprintf("No counties found for office %s", cwa))
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
		},
	}
	countiesCmd.Flags().StringVar(&shapefile, "shapefile", "", "Local county shapefile (.shp); downloaded when empty")
	countiesCmd.Flags().StringVar(&url, "url", countylookup.CountiesURL, "County shapefile zip URL")
	countiesCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory the downloaded shapefile is extracted into")
	countiesCmd.Flags().StringVar(&cwa, "cwa", "", "Office id, e.g. GSP")
	countiesCmd.Flags().StringVar(&state, "state", "", "Restrict to one state, e.g. GA")
	countiesCmd.MarkFlagRequired("cwa") //nolint:errcheck // flag is defined above
	rootCmd.AddCommand(countiesCmd)
}

func printAlerts(w io.Writer, filtered []alerts.FilteredAlert, zone *time.Location) {
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No Active Alerts")
		return
	}

	fmt.Fprintf(w, "Active Alerts: %d\n\n", len(filtered))
	for _, a := range filtered {
		fmt.Fprintln(w, a.EventOrUnknown())
		if a.Headline != "" {
			fmt.Fprintf(w, "  %s\n", a.Headline)
		}
		fmt.Fprintf(w, "  Effective: %s\n", formatAlertTime(a.EffectiveAt, zone))
		fmt.Fprintf(w, "  Expires:   %s\n", formatAlertTime(a.ExpiresAt, zone))
		fmt.Fprintf(w, "  Counties:  %s\n\n", alerts.CountyList(a.AreaDesc))
	}
}

func printCounts(w io.Writer, counts alerts.CategoryCounts) {
	parts := make([]string, 0, len(counts))
	for _, c := range alerts.Categories() {
		if counts[c] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c, counts[c]))
		}
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func printConditions(w io.Writer, conditions []models.CityConditions, zone *time.Location) {
	for _, c := range conditions {
		fmt.Fprintln(w, c.City)
		fmt.Fprintf(w, "  Currently: %s, feels like %s, %s\n",
			formatTemp(c.Current.Temperature), formatTemp(c.Current.ApparentTemperature), c.Current.ShortForecast)
		for _, p := range c.Forecast {
			line := fmt.Sprintf("  %s: %s, feels like %s, %s",
				p.Time.In(zone).Format("3 PM"), formatTemp(p.Temperature), formatTemp(p.ApparentTemperature), p.ShortForecast)
			if p.ProbabilityOfPrecipitation != nil {
				line += fmt.Sprintf(", precip %d%%", *p.ProbabilityOfPrecipitation)
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}
}

// summaryLine is one watch-mode line: time, alert total and non-zero categories
func summaryLine(now time.Time, filtered []alerts.FilteredAlert) string {
	counts := alerts.Count(filtered)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  active=%d", now.Format("2006-01-02 15:04:05 MST"), len(filtered))
	for _, c := range alerts.Categories() {
		if counts[c] > 0 {
			fmt.Fprintf(&b, " %s=%d", c, counts[c])
		}
	}
	return b.String()
}

func formatAlertTime(t time.Time, zone *time.Location) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.In(zone).Format("Jan 2, 3:04 PM MST")
}

func formatTemp(v *int) string {
	if v == nil {
		return "--°F"
	}
	return fmt.Sprintf("%d°F", *v)
}
