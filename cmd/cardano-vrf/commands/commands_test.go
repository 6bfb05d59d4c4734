package commands

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	rootDir := t.TempDir()
	viper.SetEnvPrefix("CVRF")
	require.NoError(t, viper.BindEnv("HOME"))
	t.Setenv("CVRF_HOME", rootDir)
	return rootDir
}

// setupHome points the tool at a fresh home directory and runs init in it.
func setupHome(t *testing.T) string {
	original := config
	t.Cleanup(func() { config = original })

	dir := setupEnv(t)
	require.NoError(t, RootCmd.PersistentPreRunE(RootCmd, nil))
	init := NewInitCmd()
	require.NoError(t, init.RunE(init, nil))
	return dir
}

// setFlags sets flags on a package level command and restores their
// defaults when the test ends.
func setFlags(t *testing.T, cmd *cobra.Command, nameAndValues ...string) {
	t.Helper()
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	for i := 0; i < len(nameAndValues); i += 2 {
		require.NoError(t, cmd.Flags().Set(nameAndValues[i], nameAndValues[i+1]))
	}
}

// run executes cmd with args and returns what it printed.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var runErr error
	output, err := captureStdout(func() {
		runErr = cmd.RunE(cmd, args)
	})
	require.NoError(t, err)
	return output, runErr
}

var stdoutMutex sync.Mutex

func captureStdout(f func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	stdoutMutex.Lock()
	original := os.Stdout
	defer func() {
		stdoutMutex.Lock()
		os.Stdout = original
		stdoutMutex.Unlock()
	}()
	os.Stdout = w
	stdoutMutex.Unlock()

	f()
	_ = w.Close()
	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(r); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}
