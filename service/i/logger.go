package i

// Logger defines the leveled logging methods used across the service.
type Logger interface {
	// Info logs an informational message.
	Info(string)

	// Warning logs a warning message.
	Warning(string)

	// Error logs an error message.
	Error(string)
}
