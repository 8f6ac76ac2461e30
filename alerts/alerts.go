// Package alerts defines the UI notifications the save flow can raise.
package alerts

import "time"

// ID identifies one of the known alert types.
type ID string

const (
	// Saving is shown while a save is in progress.
	Saving ID = "saving"

	// SaveSuccess is shown after a save completes.
	SaveSuccess ID = "saveSuccess"

	// SaveFailure is shown when a save fails. Persistent until dismissed.
	SaveFailure ID = "saveFailure"

	// ExtendedExtensionsWarning advises that the project uses extension
	// modules that may not load everywhere. Persistent until dismissed.
	ExtendedExtensionsWarning ID = "extendedExtensionsWarning"
)

// Level drives how an alert is styled.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

// Alert is a queued UI notification. AutoDismiss of zero means the
// alert stays until the user dismisses it.
type Alert struct {
	ID          ID
	Level       Level
	Message     string
	AutoDismiss time.Duration
}

// DefaultDismissDelay is the host-defined auto-dismiss window for
// transient alerts.
const DefaultDismissDelay = 5 * time.Second

// NewSaving builds the in-progress alert.
func NewSaving() Alert {
	return Alert{
		ID:          Saving,
		Level:       LevelInfo,
		Message:     "Saving project...",
		AutoDismiss: DefaultDismissDelay,
	}
}

// NewSaveSuccess builds the completion alert.
func NewSaveSuccess() Alert {
	return Alert{
		ID:          SaveSuccess,
		Level:       LevelSuccess,
		Message:     "Project saved.",
		AutoDismiss: DefaultDismissDelay,
	}
}

// NewSaveFailure builds the persistent failure alert.
func NewSaveFailure(message string) Alert {
	return Alert{
		ID:      SaveFailure,
		Level:   LevelError,
		Message: message,
	}
}

// NewExtendedExtensionsWarning builds the one-time advisory shown when
// a saved project uses non-core extension modules.
func NewExtendedExtensionsWarning() Alert {
	return Alert{
		ID:      ExtendedExtensionsWarning,
		Level:   LevelWarn,
		Message: "This project uses extensions that may not be available in every player.",
	}
}
