package fetch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dnldd/bsmonitor/shared"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// historySuffix is the file suffix of station history payloads.
	historySuffix = ".json"
	// statusSuffix is the file suffix of live station status payloads.
	statusSuffix = ".status.json"
	// TemperatureFile is the name of the station temperature payload.
	TemperatureFile = "temperature.json"
)

var (
	// ErrNoStatus is returned when no live status payload exists for a station.
	ErrNoStatus = errors.New("no live status for station")
	// ErrNoTemperature is returned when no temperature payload exists.
	ErrNoTemperature = errors.New("no temperature payload")
)

// LoadStationHistory loads and parses the station history payload at the provided path.
func LoadStationHistory(path string, loc *time.Location) (*shared.StationHistory, error) {
	readb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station history from file with path '%s': %w", path, err)
	}

	history, err := ParseStationHistory(readb, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing station history from '%s': %w", path, err)
	}

	return history, nil
}

// LoadStationStatus loads and parses the live station status payload at the provided path.
func LoadStationStatus(path string, station string) (*shared.StationStatus, error) {
	readb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station status from file with path '%s': %w", path, err)
	}

	status, err := ParseStationStatus(readb, station)
	if err != nil {
		return nil, fmt.Errorf("parsing station status from '%s': %w", path, err)
	}

	return status, nil
}

// LoadStationTemperatures loads and parses the temperature payload at the provided path.
func LoadStationTemperatures(path string) ([]shared.StationTemperature, error) {
	readb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading temperatures from file with path '%s': %w", path, err)
	}

	temps, err := ParseStationTemperatures(readb)
	if err != nil {
		return nil, fmt.Errorf("parsing temperatures from '%s': %w", path, err)
	}

	return temps, nil
}

// DirSourceConfig represents the configuration of a directory backed telemetry source.
type DirSourceConfig struct {
	// Dir is the directory holding <station>.json history and <station>.status.json
	// live status payloads.
	Dir string
	// Location is the time zone wire timestamps are interpreted in.
	Location *time.Location
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// DirSource reads station telemetry payloads from a directory.
type DirSource struct {
	cfg *DirSourceConfig
}

// Ensure the directory source implements the StationFetcher interface.
var _ shared.StationFetcher = (*DirSource)(nil)

// NewDirSource initializes a new directory backed telemetry source.
func NewDirSource(cfg *DirSourceConfig) (*DirSource, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("checking data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory '%s' is not a directory", cfg.Dir)
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Logger == nil {
		logger := log.With().Str("source", "dir").Logger()
		cfg.Logger = &logger
	}

	return &DirSource{cfg: cfg}, nil
}

// FetchHistory loads the voltage and alarm history of the provided station.
func (s *DirSource) FetchHistory(station string) (*shared.StationHistory, error) {
	path := filepath.Join(s.cfg.Dir, station+historySuffix)
	history, err := LoadStationHistory(path, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	if history.StationID == "" {
		history.StationID = station
	}

	s.cfg.Logger.Debug().Msgf("loaded %s history from '%s': %d voltage samples, %d alarm events, %d rejected",
		station, path, len(history.Voltage), len(history.Alarms), history.Rejected)
	for idx := range history.Rejections {
		s.cfg.Logger.Warn().Msgf("rejected %s history record: %s", station, history.Rejections[idx])
	}

	return history, nil
}

// FetchStatus loads the live status of the provided station. ErrNoStatus is returned
// when the station has no status payload.
func (s *DirSource) FetchStatus(station string) (*shared.StationStatus, error) {
	path := filepath.Join(s.cfg.Dir, station+statusSuffix)
	status, err := LoadStationStatus(path, station)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w %s", ErrNoStatus, station)
		}
		return nil, err
	}

	if !status.HasVoltage {
		s.cfg.Logger.Warn().Msgf("no finite voltage reported for %s in '%s'", station, path)
	}

	return status, nil
}

// FetchTemperatures loads the temperature payload of all stations. ErrNoTemperature
// is returned when the directory has no temperature payload.
func (s *DirSource) FetchTemperatures() ([]shared.StationTemperature, error) {
	path := filepath.Join(s.cfg.Dir, TemperatureFile)
	temps, err := LoadStationTemperatures(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in '%s'", ErrNoTemperature, s.cfg.Dir)
		}
		return nil, err
	}

	s.cfg.Logger.Debug().Msgf("loaded temperatures of %d stations from '%s'", len(temps), path)

	return temps, nil
}
