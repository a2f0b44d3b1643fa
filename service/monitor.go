package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/bsmonitor/alarm"
	"github.com/dnldd/bsmonitor/chart"
	"github.com/dnldd/bsmonitor/shared"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/atomic"
)

// MonitorConfig represents the configuration struct for the monitor service.
type MonitorConfig struct {
	// Stations represents the monitored stations.
	Stations []string
	// Fetcher fetches station telemetry.
	Fetcher shared.StationFetcher
	// Chart is the chart configuration applied to every station.
	Chart *chart.Config
	// AlarmTypes are the alarm types displayed on the station board.
	AlarmTypes []string
	// RefreshInterval is the report refresh interval. Zero refreshes once.
	RefreshInterval time.Duration
	// Location is the time zone wire timestamps are interpreted in.
	Location *time.Location
	// Output receives each refreshed report as json.
	Output io.Writer
	// Now returns the current time.
	Now func() time.Time
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *MonitorConfig) Validate() error {
	var errs error

	if len(cfg.Stations) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no stations provided for monitor service"))
	}
	for idx := range cfg.Stations {
		err := shared.ValidateStationID(cfg.Stations[idx])
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("station fetcher cannot be nil"))
	}
	if cfg.Chart == nil {
		errs = errors.Join(errs, fmt.Errorf("chart config cannot be nil"))
	} else {
		err := cfg.Chart.Validate()
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.RefreshInterval < 0 {
		errs = errors.Join(errs, fmt.Errorf("refresh interval cannot be negative"))
	}

	return errs
}

// StationReport represents the derived telemetry of a station.
type StationReport struct {
	StationID string
	Chart     *chart.Chart
	Timeline  *alarm.Timeline
	// Rejected is the number of history records skipped for malformed fields.
	Rejected int
}

// Report represents a refreshed view of all monitored stations.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Stations    []StationReport
	// Board holds the live station rows, longest outages first.
	Board []alarm.Row
	// Temperatures holds the unit temperatures of monitored stations, hottest
	// baseband unit first.
	Temperatures []alarm.TemperatureRow
	// Failures maps stations that could not be reported to the reason.
	Failures map[string]string
}

// Monitor represents the station monitoring service.
type Monitor struct {
	cfg       *MonitorConfig
	latest    atomic.Pointer[Report]
	refreshes atomic.Int64
	scheduler *gocron.Scheduler
	logger    *zerolog.Logger
}

// NewMonitor initializes a new monitor service.
func NewMonitor(cfg *MonitorConfig) (*Monitor, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating monitor config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if cfg.Logger == nil {
		logger := log.With().Str("service", "monitor").Logger()
		cfg.Logger = &logger
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.AlarmTypes == nil {
		cfg.AlarmTypes = shared.DefaultAlarmTypes()
	}

	mon := &Monitor{
		cfg:       cfg,
		scheduler: gocron.NewScheduler(cfg.Location),
		logger:    cfg.Logger,
	}

	return mon, nil
}

// reportStation derives the chart and alarm timeline of the provided station.
func (m *Monitor) reportStation(station string, now time.Time) (*StationReport, error) {
	history, err := m.cfg.Fetcher.FetchHistory(station)
	if err != nil {
		return nil, fmt.Errorf("fetching %s history: %w", station, err)
	}

	if history.Rejected > 0 {
		m.logger.Warn().Msgf("skipped %d malformed history records for %s", history.Rejected, station)
	}

	stationChart, err := chart.Build(m.cfg.Chart, history, now)
	if err != nil {
		return nil, fmt.Errorf("building %s chart: %w", station, err)
	}

	return &StationReport{
		StationID: station,
		Chart:     stationChart,
		Timeline:  alarm.NewTimeline(stationChart.Changes, now),
		Rejected:  history.Rejected,
	}, nil
}

// temperatureRows builds the temperature board of the monitored stations. A missing
// or unreadable temperature payload yields an empty board.
func (m *Monitor) temperatureRows() []alarm.TemperatureRow {
	rows := make([]alarm.TemperatureRow, 0)

	temps, err := m.cfg.Fetcher.FetchTemperatures()
	if err != nil {
		m.logger.Debug().Msgf("no temperature board: %v", err)
		return rows
	}

	for idx := range temps {
		if !slices.Contains(m.cfg.Stations, temps[idx].StationID) {
			continue
		}

		row := alarm.NewTemperatureRow(&temps[idx])
		if row.BBUSeverity == shared.CriticalSeverity || row.RRUSeverity == shared.CriticalSeverity {
			m.logger.Warn().Msgf("critical unit temperature at %s", row.StationID)
		}
		rows = append(rows, row)
	}

	alarm.SortTemperatureRows(rows, shared.BBU, true)

	return rows
}

// Refresh builds, stores and writes a report covering all monitored stations. A
// station that cannot be reported is recorded as a failure without failing the
// report.
func (m *Monitor) Refresh() (*Report, error) {
	now := m.cfg.Now()

	report := &Report{
		ID:           uuid.New().String(),
		GeneratedAt:  now,
		Stations:     make([]StationReport, 0, len(m.cfg.Stations)),
		Board:        make([]alarm.Row, 0, len(m.cfg.Stations)),
		Temperatures: m.temperatureRows(),
		Failures:     make(map[string]string),
	}

	for idx := range m.cfg.Stations {
		station := m.cfg.Stations[idx]

		stationReport, err := m.reportStation(station, now)
		if err != nil {
			m.logger.Error().Err(err).Msgf("reporting %s", station)
			report.Failures[station] = err.Error()
			continue
		}
		report.Stations = append(report.Stations, *stationReport)

		status, err := m.cfg.Fetcher.FetchStatus(station)
		if err != nil {
			m.logger.Debug().Msgf("no board row for %s: %v", station, err)
			continue
		}

		row := alarm.NewRow(status, m.cfg.AlarmTypes, now, m.cfg.Location)
		if row.LowVoltage {
			m.logger.Debug().Msgf("low voltage at %s: %s", station, spew.Sdump(row))
		}
		report.Board = append(report.Board, row)
	}

	alarm.SortRows(report.Board, alarm.ByOutage, true)

	m.latest.Store(report)
	count := m.refreshes.Inc()

	m.logger.Info().Msgf("report %s (#%d) covers %d/%d stations, %d on the board",
		report.ID, count, len(report.Stations), len(m.cfg.Stations), len(report.Board))

	err := json.NewEncoder(m.cfg.Output).Encode(report)
	if err != nil {
		return report, fmt.Errorf("writing report %s: %w", report.ID, err)
	}

	return report, nil
}

// Latest returns the most recently refreshed report, or nil before the first refresh.
func (m *Monitor) Latest() *Report {
	return m.latest.Load()
}

// Refreshes returns the number of completed refreshes.
func (m *Monitor) Refreshes() int64 {
	return m.refreshes.Load()
}

// refreshJob runs a scheduled refresh.
func (m *Monitor) refreshJob() {
	_, err := m.Refresh()
	if err != nil {
		m.logger.Error().Err(err).Msg("scheduled refresh failed")
	}
}

// Run handles the lifecycle processes of the monitor service. Without a refresh
// interval a single report is produced.
func (m *Monitor) Run(ctx context.Context) error {
	if m.cfg.RefreshInterval == 0 {
		_, err := m.Refresh()
		return err
	}

	m.scheduler.SingletonModeAll()
	_, err := m.scheduler.Every(m.cfg.RefreshInterval).Do(m.refreshJob)
	if err != nil {
		return fmt.Errorf("scheduling report refresh: %w", err)
	}

	m.logger.Info().Msgf("refreshing %d stations every %s", len(m.cfg.Stations), m.cfg.RefreshInterval)
	m.scheduler.StartAsync()

	<-ctx.Done()
	m.scheduler.Stop()

	return nil
}
