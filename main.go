package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"blockpad-cli/appstate"
	"blockpad-cli/backup"
	"blockpad-cli/commands"
	"blockpad-cli/config"
	"blockpad-cli/download"
	"blockpad-cli/fileaccess"
	"blockpad-cli/filesystem"
	"blockpad-cli/history"
	"blockpad-cli/project"
	"blockpad-cli/save"
	"blockpad-cli/supabase"
	"blockpad-cli/tracing"
	"blockpad-cli/tui"
	"blockpad-cli/tui/picker"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "history":
			runCommand(commands.NewHistoryCmd(history.NewLog(config.HistoryFilePath)))
			return
		case "info":
			runCommand(commands.NewInfoCmd(config.NewManager()))
			return
		case "version":
			fmt.Println("blockpad " + version)
			return
		}
	}

	if err := runEditor(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand(cmd interface{ Execute(args []string) error }) {
	if err := cmd.Execute(os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes structured logs next to the config file; stdout
// belongs to the TUI.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	logPath := filepath.Join(filepath.Dir(config.ConfigFilePath), "blockpad.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return log
	}
	log.SetOutput(file)
	return log
}

// loadProject opens the .sb3 file given on the command line, or starts
// a fresh single-stage project.
func loadProject(log *logrus.Logger) *project.Project {
	if len(os.Args) > 1 {
		path := os.Args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("could not read project file, starting fresh")
		} else if p, err := project.Read(data); err != nil {
			log.WithError(err).WithField("path", path).Warn("could not parse project file, starting fresh")
		} else {
			if p.Title == "" {
				p.Title = project.TitleFromFilename(filepath.Base(path))
			}
			return p
		}
	}

	return &project.Project{
		Targets: []project.Target{{Name: "Stage", IsStage: true}},
	}
}

// logMessenger surfaces blocking failure messages through the log file;
// the persistent alert carries the same text on screen.
type logMessenger struct {
	log logrus.FieldLogger
}

func (m *logMessenger) ShowMessage(message string) {
	m.log.Error(message)
}

func runEditor() error {
	log := newLogger()
	configManager := config.NewManager()
	fileManager := filesystem.NewManager()

	current := loadProject(log)

	title := current.Title
	if title == "" {
		title = configManager.LastTitle()
	}
	store := appstate.New(title)
	current.Title = title

	// A stored destination is only offered again while its file exists.
	if dest, ok := configManager.LastDestination(); ok && fileManager.FileExists(dest.Path) {
		store.SetLastDestination(dest)
	}

	// Keep the serialized title in step with the store.
	serializer := project.NewSB3Serializer(func() *project.Project {
		current.Title = store.Title()
		return current
	})

	bridge := picker.NewBridge()
	provider := fileaccess.NewOSProvider(bridge.Pick)

	downloadsDir := configManager.DownloadsDir()
	if override := config.GetDownloadsDirOverride(); override != "" {
		downloadsDir = override
	}
	if !fileManager.DirectoryExists(downloadsDir) {
		if err := fileManager.CreateDirectory(downloadsDir); err != nil {
			log.WithError(err).WithField("dir", downloadsDir).Warn("could not create downloads directory")
		}
	}
	downloader := download.NewDirDownloader(downloadsDir, log)

	var backupService *backup.Service
	if client, err := supabase.NewSupabaseClient(); err != nil {
		log.WithError(err).Info("cloud backups disabled")
	} else {
		backupService = backup.NewService(backup.NewSupabaseStorage(client), backup.DefaultBucket, log)
	}

	histLog := history.NewLog(config.HistoryFilePath)

	tracer, err := tracing.NewManager(tracing.DefaultConfig(), version)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
	} else {
		defer tracer.Close()
	}

	orch, err := save.New(save.Config{
		Serializer: serializer,
		Provider:   provider,
		State:      store,
		Dispatch:   store,
		Downloader: downloader,
		Messenger:  &logMessenger{log: log},
		Logger:     log,
		OnSaveFinished: func(outcome save.Outcome) {
			entry := history.Entry{
				Filename: outcome.Filename,
				Bytes:    outcome.Bytes,
				Mode:     string(outcome.Mode),
			}
			if outcome.Destination != nil {
				entry.Destination = outcome.Destination.Path
			}
			entry.Time = time.Now()
			if err := histLog.Append(entry); err != nil {
				log.WithError(err).Warn("could not record save history")
			}

			if outcome.Destination != nil {
				if err := configManager.UpdateLastDestination(*outcome.Destination); err != nil {
					log.WithError(err).Warn("could not persist save destination")
				}
			}
			if err := configManager.UpdateLastTitle(store.Title()); err != nil {
				log.WithError(err).Warn("could not persist project title")
			}

			if backupService != nil && backupService.Enabled() {
				backupService.Backup(outcome.Filename, outcome.Content)
			}
			if tracer != nil {
				_ = tracer.TrackSaveOutcome(outcome, 0)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build save pipeline: %w", err)
	}

	var integration *tracing.TUIIntegration
	if tracer != nil {
		integration = tracing.NewTUIIntegration(tracer)
	}

	model, err := tui.New(tui.Config{
		Store:        store,
		Orchestrator: orch,
		History:      histLog,
		Picker:       picker.NewComponent(downloadsDir, configManager.RecentDestinations()),
		Tracing:      integration,
		Revealer:     fileManager,
		ProjectSummary: fmt.Sprintf("%d blocks in %d targets",
			current.BlockCount(), len(current.Targets)),
	})
	if err != nil {
		return fmt.Errorf("failed to build interface: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	bridge.Attach(func(req picker.Request) {
		p.Send(picker.RequestMsg{Request: req})
	})
	sub := store.Subscribe(func(change appstate.Change) {
		p.Send(tui.StateChangedMsg{Change: change})
	})
	defer sub.Unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
