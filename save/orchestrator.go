// Package save orchestrates project persistence: it connects the
// project serializer, the platform file-access provider, and the
// application state store, and exposes the resulting save operations as
// a capability descriptor the UI can hand to whatever view it builds.
package save

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"blockpad-cli/alerts"
	"blockpad-cli/fileaccess"
	"blockpad-cli/project"
)

// DefaultTitle is substituted when the project has no title.
const DefaultTitle = "Untitled"

// saveFlightKey collapses concurrent save triggers into one in-flight
// operation. All entry points share it so two rapid keypresses cannot
// start overlapping write sequences.
const saveFlightKey = "save"

// Mode records which save path produced an outcome.
type Mode string

const (
	ModeDownload Mode = "download"
	ModeNew      Mode = "new"
	ModeExisting Mode = "existing"
)

// Outcome summarizes a completed save for the completion callback. The
// content reference is transient; callbacks must not hold it past their
// own execution.
type Outcome struct {
	Filename    string
	Bytes       int
	Mode        Mode
	Destination *fileaccess.Destination
	Content     *project.Content
}

// StateReader is the slice of application state the orchestrator reads.
type StateReader interface {
	Title() string
	LastDestination() (fileaccess.Destination, bool)
	ExtensionsWarningShown() bool
}

// Dispatcher is the slice of state updates the orchestrator performs.
type Dispatcher interface {
	SetTitle(title string)
	SetLastDestination(dest fileaccess.Destination)
	MarkSaved()
	MarkExtensionsWarningShown()
	PushAlert(alert alerts.Alert)
}

// Downloader delivers serialized content as a browser-style download.
// It is fire-and-forget: no success or failure signal is consumed.
type Downloader interface {
	Download(filename string, content *project.Content)
}

// Messenger surfaces a blocking user-facing message.
type Messenger interface {
	ShowMessage(message string)
}

// Config collects the orchestrator's dependencies.
type Config struct {
	Serializer project.Serializer
	Provider   fileaccess.Provider
	State      StateReader
	Dispatch   Dispatcher
	Downloader Downloader

	// Messenger is optional; without it failures are only alerted and logged.
	Messenger Messenger

	// OnSaveFinished is optional and fires after every successful save.
	OnSaveFinished func(outcome Outcome)

	// DefaultTitle overrides the fallback title. Empty means DefaultTitle.
	DefaultTitle string

	// Logger is optional; a discarding logger is used when nil.
	Logger logrus.FieldLogger
}

// Orchestrator coordinates the save flow. Create it with New.
type Orchestrator struct {
	serializer   project.Serializer
	provider     fileaccess.Provider
	state        StateReader
	dispatch     Dispatcher
	downloader   Downloader
	messenger    Messenger
	onFinished   func(outcome Outcome)
	defaultTitle string
	log          logrus.FieldLogger

	flight singleflight.Group
}

// New validates the configuration and creates an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Serializer == nil {
		return nil, fmt.Errorf("save: serializer is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("save: file access provider is required")
	}
	if cfg.State == nil || cfg.Dispatch == nil {
		return nil, fmt.Errorf("save: state reader and dispatcher are required")
	}
	if cfg.Downloader == nil {
		return nil, fmt.Errorf("save: downloader is required")
	}

	defaultTitle := cfg.DefaultTitle
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Orchestrator{
		serializer:   cfg.Serializer,
		provider:     cfg.Provider,
		state:        cfg.State,
		dispatch:     cfg.Dispatch,
		downloader:   cfg.Downloader,
		messenger:    cfg.Messenger,
		onFinished:   cfg.OnSaveFinished,
		defaultTitle: defaultTitle,
		log:          log,
	}, nil
}

// Filename returns the filename the current title derives to.
func (o *Orchestrator) Filename() string {
	return project.Filename(o.state.Title(), o.defaultTitle)
}

// Capabilities builds the save capability descriptor for the current
// provider and state.
func (o *Orchestrator) Capabilities() Capabilities {
	if !o.provider.Available() {
		return UnavailableCapabilities(o.DownloadProject)
	}

	name := ""
	if dest, ok := o.state.LastDestination(); ok {
		name = dest.Name
	}
	return AvailableCapabilities(name, o.DownloadProject, o.SaveAsNew, o.SaveToLastFile, o.SaveToLastFileOrNew)
}

// DownloadProject serializes the project and hands it to the blob
// downloader. Always available.
//
// Review note: a serializer failure here is returned raw instead of
// going through handleSaveError, so no failure alert is raised on this
// path. That matches the long-standing behavior of the download flow;
// change it only as a deliberate product decision.
func (o *Orchestrator) DownloadProject(ctx context.Context) error {
	_, err, _ := o.flight.Do(saveFlightKey, func() (interface{}, error) {
		return nil, o.downloadProject(ctx)
	})
	return err
}

func (o *Orchestrator) downloadProject(ctx context.Context) error {
	o.dispatch.PushAlert(alerts.NewSaving())

	content, err := o.serializer.SerializeProject(ctx)
	if err != nil {
		return err
	}

	filename := o.Filename()
	o.finishSave(content, Outcome{
		Filename: filename,
		Bytes:    len(content.Data),
		Mode:     ModeDownload,
		Content:  content,
	})
	o.downloader.Download(filename, content)
	return nil
}

// SaveAsNew prompts for a destination and writes the project to it. On
// success the destination is stored for future saves and, when the
// chosen filename carries a project extension, the title follows it.
func (o *Orchestrator) SaveAsNew(ctx context.Context) error {
	_, err, _ := o.flight.Do(saveFlightKey, func() (interface{}, error) {
		return nil, o.saveAsNew(ctx)
	})
	return err
}

func (o *Orchestrator) saveAsNew(ctx context.Context) error {
	dest, err := o.provider.ShowSaveFilePicker(ctx, o.Filename())
	if err != nil {
		return o.handleSaveError(err)
	}

	if err := o.writeSequence(ctx, dest, ModeNew); err != nil {
		return o.handleSaveError(err)
	}

	o.dispatch.SetLastDestination(dest)
	if title := project.TitleFromFilename(dest.Name); title != "" {
		o.dispatch.SetTitle(title)
	}
	return nil
}

// SaveToLastFile writes the project to the stored destination.
func (o *Orchestrator) SaveToLastFile(ctx context.Context) error {
	_, err, _ := o.flight.Do(saveFlightKey, func() (interface{}, error) {
		return nil, o.saveToLastFile(ctx)
	})
	return err
}

func (o *Orchestrator) saveToLastFile(ctx context.Context) error {
	dest, ok := o.state.LastDestination()
	if !ok {
		return o.handleSaveError(fmt.Errorf("no destination stored"))
	}
	if err := o.writeSequence(ctx, dest, ModeExisting); err != nil {
		return o.handleSaveError(err)
	}
	return nil
}

// SaveToLastFileOrNew is the smart-save policy: reuse the stored
// destination if one exists, otherwise prompt for a new one.
func (o *Orchestrator) SaveToLastFileOrNew(ctx context.Context) error {
	if _, ok := o.state.LastDestination(); ok {
		return o.SaveToLastFile(ctx)
	}
	return o.SaveAsNew(ctx)
}

// writeSequence performs one write against a destination. The writable
// is acquired before anything else -- deferring acquisition risks
// losing the granted destination on some hosts -- and released exactly
// once on every exit path.
func (o *Orchestrator) writeSequence(ctx context.Context, dest fileaccess.Destination, mode Mode) (err error) {
	w, err := o.provider.CreateWritable(ctx, dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := o.provider.CloseWritable(w); cerr != nil && err == nil {
			err = cerr
		}
	}()

	o.dispatch.PushAlert(alerts.NewSaving())

	content, err := o.serializer.SerializeProject(ctx)
	if err != nil {
		return err
	}

	if err = o.provider.WriteToWritable(ctx, w, content); err != nil {
		return err
	}

	d := dest
	o.finishSave(content, Outcome{
		Filename:    dest.Name,
		Bytes:       len(content.Data),
		Mode:        mode,
		Destination: &d,
		Content:     content,
	})
	return nil
}

// finishSave runs the save-finished composite: one-time extended
// extensions advisory, clean flag, success alert, completion callback.
func (o *Orchestrator) finishSave(content *project.Content, outcome Outcome) {
	if content.UsesExtendedExtensions && !o.state.ExtensionsWarningShown() {
		o.dispatch.PushAlert(alerts.NewExtendedExtensionsWarning())
		o.dispatch.MarkExtensionsWarningShown()
	}

	o.dispatch.MarkSaved()
	o.dispatch.PushAlert(alerts.NewSaveSuccess())

	o.log.WithFields(logrus.Fields{
		"filename": outcome.Filename,
		"bytes":    outcome.Bytes,
		"mode":     outcome.Mode,
	}).Info("project saved")

	if o.onFinished != nil {
		o.onFinished(outcome)
	}
}

// handleSaveError routes a save failure. User cancellation is the
// designed "changed their mind" path and stays completely silent; any
// other error raises a persistent alert, a blocking message with the
// stringified error, and a diagnostic log entry. No retry.
func (o *Orchestrator) handleSaveError(err error) error {
	if fileaccess.IsCancellation(err) {
		return nil
	}

	message := fmt.Sprintf("Saving the project failed: %s", err)
	o.dispatch.PushAlert(alerts.NewSaveFailure(message))
	if o.messenger != nil {
		o.messenger.ShowMessage(message)
	}
	o.log.WithError(err).Error("project save failed")
	return err
}
