package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/compilelock/compilelock/internal/dirlock"
)

var (
	freeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	heldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of the cache lock",
	Long: `Display whether the cache directory lock is currently held, and by
which process if the holder recorded its PID.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := lockDir()
	if err != nil {
		return err
	}

	info, err := dirlock.Inspect(dir)
	if err != nil {
		return fmt.Errorf("failed to inspect lock: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderStatus(info))
	return nil
}

// renderStatus formats one lock state line.
func renderStatus(info dirlock.Info) string {
	if !info.Held {
		return fmt.Sprintf("%s  %s", freeStyle.Render("unlocked"), mutedStyle.Render(info.Dir))
	}

	line := fmt.Sprintf("%s  %s", heldStyle.Render("locked"), mutedStyle.Render(info.Dir))
	if info.HolderPID > 0 {
		state := "running"
		if !info.HolderAlive {
			state = "not running"
		}
		line += mutedStyle.Render(fmt.Sprintf("  held by PID %d (%s)", info.HolderPID, state))
	}
	return line
}
