package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dnldd/bsmonitor/chart"
	"github.com/dnldd/bsmonitor/shared"
	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
	// Stations represents the monitored stations.
	Stations []string
	// DataDir is the directory holding station telemetry payloads.
	DataDir string
	// Timezone is the IANA time zone wire timestamps are interpreted in.
	Timezone string
	// LookbackDays is the number of days of history charted.
	LookbackDays int
	// ChartMode is the voltage chart mode (line or candle).
	ChartMode string
	// Timeframe is the candle timeframe (5M, 15M, 30M, 1H, 3H, 6H, 12H, 1D).
	Timeframe string
	// Alignment is the candle bucket alignment (session or grid).
	Alignment string
	// ShowMA is the moving average overlay flag.
	ShowMA bool
	// MAPeriod is the moving average period.
	MAPeriod int
	// Refresh is the report refresh interval in seconds, zero refreshes once.
	Refresh int

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Stations) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no stations provided for monitor service"))
	}
	seen := make(map[string]bool, len(cfg.Stations))
	for idx := range cfg.Stations {
		station := cfg.Stations[idx]
		err := shared.ValidateStationID(station)
		if err != nil {
			errs = errors.Join(errs, err)
		}
		if seen[station] {
			errs = errors.Join(errs, fmt.Errorf("station %s provided more than once", station))
		}
		seen[station] = true
	}
	if cfg.DataDir == "" {
		errs = errors.Join(errs, fmt.Errorf("data directory cannot be an empty string"))
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = errors.Join(errs, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err))
	}
	if cfg.LookbackDays <= 0 {
		errs = errors.Join(errs, fmt.Errorf("lookback days must be positive"))
	}
	if _, err := chart.ParseMode(cfg.ChartMode); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := shared.ParseTimeframe(cfg.Timeframe); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := shared.ParseAlignment(cfg.Alignment); err != nil {
		errs = errors.Join(errs, err)
	}
	if cfg.ShowMA && cfg.MAPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("moving average period must be positive"))
	}
	if cfg.Refresh < 0 {
		errs = errors.Join(errs, fmt.Errorf("refresh interval cannot be negative"))
	}

	return errs
}

// ChartConfig derives the chart configuration from a validated config.
func (cfg *Config) ChartConfig() (*chart.Config, error) {
	mode, err := chart.ParseMode(cfg.ChartMode)
	if err != nil {
		return nil, err
	}
	timeframe, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		return nil, err
	}
	alignment, err := shared.ParseAlignment(cfg.Alignment)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	return &chart.Config{
		Mode:                mode,
		Timeframe:           timeframe,
		Alignment:           alignment,
		Lookback:            shared.LookbackDays(cfg.LookbackDays),
		ShowMovingAverage:   cfg.ShowMA,
		MovingAveragePeriod: cfg.MAPeriod,
		Band:                shared.DefaultVoltageBand(),
		Location:            loc,
	}, nil
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
// Values set in the environment take precedence over the provided default.
func (cfg *Config) registerFlag(name string, value interface{}, def string, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := def
	if env, ok := os.LookupEnv(name); ok {
		defValue = env
	}

	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	flags := []struct {
		name  string
		value interface{}
		def   string
		usage string
	}{
		{"stations", &cfg.Stations, "", "the monitored stations (e.g. NS0519,NS2304)"},
		{"datadir", &cfg.DataDir, "data", "the station telemetry directory"},
		{"timezone", &cfg.Timezone, "Local", "the time zone of telemetry timestamps"},
		{"lookbackdays", &cfg.LookbackDays, strconv.Itoa(chart.DefaultLookbackDays), "the charted history in days"},
		{"chartmode", &cfg.ChartMode, "line", "the voltage chart mode (line, candle)"},
		{"timeframe", &cfg.Timeframe, shared.OneHour.String(), "the candle timeframe"},
		{"alignment", &cfg.Alignment, shared.SessionAlignment.String(), "the candle alignment (session, grid)"},
		{"showma", &cfg.ShowMA, "false", "the moving average overlay flag"},
		{"maperiod", &cfg.MAPeriod, strconv.Itoa(chart.DefaultMovingAveragePeriod), "the moving average period"},
		{"refresh", &cfg.Refresh, "0", "the refresh interval in seconds, 0 refreshes once"},
	}
	for idx := range flags {
		f := flags[idx]
		err = cfg.registerFlag(f.name, f.value, f.def, f.usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
