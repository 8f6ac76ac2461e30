package commands

import (
	"fmt"
	"io"
	"os"

	"blockpad-cli/config"
)

// InfoCmd prints where blockpad keeps its files and what it remembers
// from previous sessions.
type InfoCmd struct {
	manager *config.Manager
	out     io.Writer
}

// NewInfoCmd creates a new instance of InfoCmd
func NewInfoCmd(manager *config.Manager) *InfoCmd {
	return &InfoCmd{
		manager: manager,
		out:     os.Stdout,
	}
}

// Execute runs the info command
func (c *InfoCmd) Execute(args []string) error {
	if c.manager == nil {
		return fmt.Errorf("config manager is not configured")
	}

	fmt.Fprintf(c.out, "Config file:   %s\n", config.ConfigFilePath)
	fmt.Fprintf(c.out, "History file:  %s\n", config.HistoryFilePath)
	fmt.Fprintf(c.out, "Downloads dir: %s\n", c.manager.DownloadsDir())

	if title := c.manager.LastTitle(); title != "" {
		fmt.Fprintf(c.out, "Last title:    %s\n", title)
	}
	if dest, ok := c.manager.LastDestination(); ok {
		fmt.Fprintf(c.out, "Last save:     %s (%s)\n", dest.Name, dest.Path)
	} else {
		fmt.Fprintln(c.out, "Last save:     none")
	}
	return nil
}
