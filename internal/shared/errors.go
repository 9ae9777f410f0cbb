package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSongNotFound       = fmt.Errorf("song not found")
	ErrArtistNotFound     = fmt.Errorf("artist not found")
	ErrStationNotFound    = fmt.Errorf("station not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Persistence errors
	ErrRecordNotFound = fmt.Errorf("record not found")

	// Typeahead errors
	ErrDuplicateBinding = fmt.Errorf("binding already registered")
	ErrInvalidBinding   = fmt.Errorf("invalid binding")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
