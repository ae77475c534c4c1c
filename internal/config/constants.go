package config

// Default filesystem locations
const (
	// DefaultDatabasePath is the default path for the attendance database
	DefaultDatabasePath = "./attendance.db"

	// DefaultExportDir is the default documents directory for CSV exports
	DefaultExportDir = "./documents"
)
