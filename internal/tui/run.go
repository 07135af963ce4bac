package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/giveaway/internal/debug"
)

// Run starts the browser and blocks until the user quits. When logFile is
// set, diagnostics go there instead of the (occupied) terminal.
func Run(opts Options, logFile string) error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "giveaway")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		debug.SetOutput(f)
		defer debug.SetOutput(nil)
	} else if debug.Enabled() {
		// stderr would draw over the alt screen.
		debug.SetOutput(nil)
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
