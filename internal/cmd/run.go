package cmd

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/compilelock/compilelock/internal/dirlock"
)

var runCmd = &cobra.Command{
	Use:   "run -- command [args...]",
	Short: "Run a command while holding the cache lock",
	Long: `Run acquires the exclusive lock on the cache directory, executes the
given command with inherited stdio, and releases the lock when the
command exits. The child's exit code is propagated.

Acquisition blocks until the current holder releases; there is no
timeout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	dir, err := lockDir()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Close()

	err = dirlock.With(dir, func() error {
		child := exec.Command(args[0], args[1:]...)
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		return child.Run()
	}, dirlock.WithLogger(logger))

	// A non-zero child exit is the child's result, not a lock failure.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		_ = logger.Close()
		os.Exit(exitErr.ExitCode())
	}
	return err
}
