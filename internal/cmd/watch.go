package cmd

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/compilelock/compilelock/internal/dirlock"
)

const watchInterval = 500 * time.Millisecond

var titleStyle = lipgloss.NewStyle().Bold(true)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the cache lock state live",
	Long: `Watch polls the cache directory lock and displays its state until
interrupted. Press q to quit.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir, err := lockDir()
	if err != nil {
		return err
	}

	// Fail fast on a missing directory before entering the UI.
	info, err := dirlock.Inspect(dir)
	if err != nil {
		return fmt.Errorf("failed to inspect lock: %w", err)
	}

	p := tea.NewProgram(watchModel{dir: dir, info: info})
	_, err = p.Run()
	return err
}

type tickMsg time.Time

type watchModel struct {
	dir  string
	info dirlock.Info
	err  error
}

func watchTick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.info, m.err = dirlock.Inspect(m.dir)
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("compilelock watch"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(heldStyle.Render("error: " + m.err.Error()))
	} else {
		b.WriteString(renderStatus(m.info))
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}
