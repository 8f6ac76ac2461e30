package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"blockpad-cli/history"
)

// HistoryCmd prints the save history as a table, newest first.
type HistoryCmd struct {
	log *history.Log
	out io.Writer

	Limit int `short:"n" long:"limit" description:"Maximum number of entries to show"`
}

// NewHistoryCmd creates a new instance of HistoryCmd
func NewHistoryCmd(log *history.Log) *HistoryCmd {
	return &HistoryCmd{
		log:   log,
		out:   os.Stdout,
		Limit: 20,
	}
}

// Execute runs the history command
func (c *HistoryCmd) Execute(args []string) error {
	if c.log == nil {
		return fmt.Errorf("history log is not configured")
	}

	entries, err := c.log.Entries()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No saves recorded yet.")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Filename", "Destination", "Bytes", "Mode")

	shown := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		e := entries[i]
		if err := table.Append([]string{
			e.Time.Format("2006-01-02 15:04:05"),
			e.Filename,
			e.Destination,
			fmt.Sprintf("%d", e.Bytes),
			e.Mode,
		}); err != nil {
			return fmt.Errorf("failed to build history table: %w", err)
		}
		shown++
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render history table: %w", err)
	}
	return nil
}
