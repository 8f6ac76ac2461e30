package save

import "context"

// Action is one of the save operations exposed to the UI.
type Action func(ctx context.Context) error

// Capabilities describes which save operations the host supports. It is
// a two-variant descriptor discriminated by Available: construct it
// only through UnavailableCapabilities or AvailableCapabilities so the
// variants cannot be mixed.
//
// SmartSave is set in both variants and is the recommended default for
// generic "save" triggers such as the keyboard shortcut.
type Capabilities struct {
	// Available reports whether direct-to-disk saving is supported.
	Available bool

	// TargetName is the display name of the stored destination. Empty
	// when no destination is stored or the variant is unavailable.
	TargetName string

	// Download exports the project through the blob-download path.
	Download Action

	// SaveAsNew prompts for a destination. Nil in the unavailable variant.
	SaveAsNew Action

	// SaveToLastFile writes to the stored destination. Nil in the
	// unavailable variant.
	SaveToLastFile Action

	// SmartSave reuses the last destination if known, else prompts; in
	// the unavailable variant it is the download action.
	SmartSave Action
}

// UnavailableCapabilities builds the descriptor for hosts without file
// access: only the download action exists, and smart save aliases it.
func UnavailableCapabilities(download Action) Capabilities {
	return Capabilities{
		Available: false,
		Download:  download,
		SmartSave: download,
	}
}

// AvailableCapabilities builds the descriptor for hosts with file
// access. targetName may be empty when no destination is stored yet.
func AvailableCapabilities(targetName string, download, saveAsNew, saveToLastFile, smartSave Action) Capabilities {
	return Capabilities{
		Available:      true,
		TargetName:     targetName,
		Download:       download,
		SaveAsNew:      saveAsNew,
		SaveToLastFile: saveToLastFile,
		SmartSave:      smartSave,
	}
}
