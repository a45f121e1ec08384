package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/ngmaloney/wx-dashboard/internal/alerts"
	"github.com/ngmaloney/wx-dashboard/internal/config"
	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/observability"
	"github.com/ngmaloney/wx-dashboard/internal/rotation"
)

// Deps are the collaborators the dashboard model needs
type Deps struct {
	Alerts     AlertSource
	Conditions ConditionsSource
	Clock      clockwork.Clock        // optional
	Logger     logrus.FieldLogger     // optional
	Metrics    *observability.Metrics // optional
}

// Model represents the dashboard's state. Every timer owns a disjoint slice
// of it and all mutation happens in Update.
type Model struct {
	cfg    *config.Config
	zone   *time.Location
	region *alerts.Region

	alertSrc AlertSource
	condSrc  ConditionsSource
	clock    clockwork.Clock
	logger   logrus.FieldLogger
	metrics  *observability.Metrics

	width  int
	height int
	now    time.Time

	// Alerts
	rawAlerts    []models.RawAlert
	alertsLoaded bool
	lastFetch    time.Time
	pager        *rotation.Pager[alerts.FilteredAlert]
	counts       alerts.CategoryCounts

	// Conditions
	conditions []models.CityConditions
	cycler     *rotation.Cycler

	// View state
	maps         []mapProduct
	mapIndex     int
	showCounties bool

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

// NewModel creates a dashboard model for cfg
func NewModel(cfg *config.Config, deps Deps) Model {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = observability.DiscardLogger()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		cfg:          cfg,
		zone:         cfg.Location(),
		region:       alerts.NewRegion(cfg.Offices),
		alertSrc:     deps.Alerts,
		condSrc:      deps.Conditions,
		clock:        deps.Clock,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		pager:        rotation.NewPager[alerts.FilteredAlert](cfg.PageSize),
		counts:       alerts.Count(nil),
		cycler:       rotation.NewCycler(0),
		maps:         mapProducts(cfg.RadarStation, cfg.SocialFeedURL),
		showCounties: cfg.View.CountyDetail == config.CountyDetailAlways,
		spinner:      s,
		keys:         newKeyMap(cfg.View.CountyDetail == config.CountyDetailToggle),
		help:         help.New(),
	}
	m.now = m.clock.Now().In(m.zone)
	return m
}

// Init starts both fetches and every timer
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchAlerts(m.alertSrc, m.cfg.HTTPTimeout),
		fetchConditions(m.condSrc, m.cfg.Locations, m.cfg.HTTPTimeout),
		clockTick(m.cfg.ClockInterval),
		scheduleAlertRefresh(m.cfg.AlertRefresh),
		scheduleConditionsRefresh(m.cfg.ConditionsRefresh),
		pageTick(m.cfg.PageInterval),
		rotateTick(m.cfg.RotationInterval),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case clockTickMsg:
		m.now = m.clock.Now().In(m.zone)
		// time membership changes with the clock, not just with new data
		m.refilter()
		return m, clockTick(m.cfg.ClockInterval)

	case alertRefreshMsg:
		return m, tea.Batch(
			fetchAlerts(m.alertSrc, m.cfg.HTTPTimeout),
			scheduleAlertRefresh(m.cfg.AlertRefresh),
		)

	case conditionsRefreshMsg:
		return m, tea.Batch(
			fetchConditions(m.condSrc, m.cfg.Locations, m.cfg.HTTPTimeout),
			scheduleConditionsRefresh(m.cfg.ConditionsRefresh),
		)

	case alertsFetchedMsg:
		m.rawAlerts = msg.alerts
		m.alertsLoaded = true
		m.lastFetch = m.clock.Now()
		m.now = m.lastFetch.In(m.zone)
		m.refilter()
		m.logger.WithFields(logrus.Fields{
			"raw":    len(m.rawAlerts),
			"active": m.pager.Len(),
		}).Debug("alerts updated")
		return m, nil

	case conditionsFetchedMsg:
		m.conditions = msg.conditions
		m.cycler.SetLen(len(m.conditions))
		return m, nil

	case pageTickMsg:
		m.pager.Tick()
		return m, pageTick(m.cfg.PageInterval)

	case rotateTickMsg:
		m.cycler.Tick()
		return m, rotateTick(m.cfg.RotationInterval)

	case resumeMsg:
		m.pager.Resume(msg.token)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if tok, ok := m.pager.Next(); ok {
			return m, resumeAfter(tok, m.cfg.ResumeDelay)
		}

	case key.Matches(msg, m.keys.Prev):
		if tok, ok := m.pager.Prev(); ok {
			return m, resumeAfter(tok, m.cfg.ResumeDelay)
		}

	case key.Matches(msg, m.keys.Map):
		m.mapIndex = (m.mapIndex + 1) % len(m.maps)

	case key.Matches(msg, m.keys.Counties):
		m.showCounties = !m.showCounties

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(
			fetchAlerts(m.alertSrc, m.cfg.HTTPTimeout),
			fetchConditions(m.condSrc, m.cfg.Locations, m.cfg.HTTPTimeout),
		)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// refilter recomputes the filtered list and counts from the raw alerts at m.now
func (m *Model) refilter() {
	filtered := alerts.Filter(m.rawAlerts, m.now, m.region)
	m.pager.SetItems(filtered)
	m.counts = alerts.Count(filtered)

	if m.metrics != nil {
		byName := make(map[string]int, len(m.counts))
		for c, n := range m.counts {
			byName[string(c)] = n
		}
		m.metrics.SetCategoryCounts(len(filtered), byName)
	}
}
