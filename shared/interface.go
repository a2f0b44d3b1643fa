package shared

// StationFetcher defines the requirements for fetching station telemetry.
type StationFetcher interface {
	// FetchHistory fetches the voltage and alarm history of a station.
	FetchHistory(station string) (*StationHistory, error)
	// FetchStatus fetches the live voltage and alarm status of a station.
	FetchStatus(station string) (*StationStatus, error)
	// FetchTemperatures fetches the unit temperatures of all reporting stations.
	FetchTemperatures() ([]StationTemperature, error)
}
