package app

import "time"

// Constants
const (
	DefaultConfigFile   = "schedules.json"
	DefaultFetchTimeout = 10 * time.Second

	// Error messages
	ErrInvalidFormat       = "Invalid format"
	ErrInvalidMode         = "Invalid view mode"
	ErrUnknownSource       = "Unknown schedule source"
	ErrScheduleUnavailable = "Schedule unavailable"
	ErrNoActiveSchedule    = "No active schedule"
	ErrInternalServer      = "Internal server error"
	ErrFailedToGenerateCSV = "Failed to generate CSV"

	// ICS constants
	ICSProductID = "-//Wezone//HorarioSemanal//ES"
	ICSTimezone  = "Europe/Madrid"
)
