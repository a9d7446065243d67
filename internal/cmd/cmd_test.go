package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/compilelock/compilelock/internal/dirlock"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "compilelock" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "compilelock")
	}

	expectedCmds := []string{"run", "status", "watch"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("cache.dir", dir)

	t.Run("unlocked", func(t *testing.T) {
		output, err := executeCommand(rootCmd, "status")
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if !strings.Contains(output, "unlocked") {
			t.Errorf("status output = %q, want it to report unlocked", output)
		}
	})

	t.Run("locked", func(t *testing.T) {
		l := dirlock.New(dir)
		if err := l.Lock(); err != nil {
			t.Fatalf("Lock: %v", err)
		}
		defer func() {
			if err := l.Unlock(); err != nil {
				t.Errorf("Unlock: %v", err)
			}
		}()

		output, err := executeCommand(rootCmd, "status")
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if !strings.Contains(output, "held by PID") {
			t.Errorf("status output = %q, want it to report the holder", output)
		}
	})
}

func TestStatusCommand_MissingDirectory(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("cache.dir", "/nonexistent/compile-cache")

	if _, err := executeCommand(rootCmd, "status"); err == nil {
		t.Error("status on a missing directory should fail")
	}
}

func TestRenderStatus(t *testing.T) {
	free := renderStatus(dirlock.Info{Dir: "/tmp/cache"})
	if !strings.Contains(free, "unlocked") || !strings.Contains(free, "/tmp/cache") {
		t.Errorf("renderStatus(free) = %q", free)
	}

	held := renderStatus(dirlock.Info{
		Dir:         "/tmp/cache",
		Held:        true,
		HolderPID:   os.Getpid(),
		HolderAlive: true,
	})
	if !strings.Contains(held, "locked") || !strings.Contains(held, "PID") {
		t.Errorf("renderStatus(held) = %q", held)
	}
}

func TestLockDir(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if _, err := lockDir(); err == nil {
		t.Error("lockDir with no configuration should fail")
	}

	viper.Set("cache.dir", "/srv/cache")
	dir, err := lockDir()
	if err != nil {
		t.Fatalf("lockDir: %v", err)
	}
	if dir != "/srv/cache" {
		t.Errorf("lockDir = %q, want /srv/cache", dir)
	}
}
