package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/svgicon/pkg"
	"github.com/provide-io/svgicon/pkg/icon/icns"
)

const badgeSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="14" fill="#c33"/></svg>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Slice flags append across Execute calls on the shared root command.
	for _, sub := range rootCmd.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				require.NoError(t, sv.Replace(nil))
			}
		})
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "badge.svg")
	require.NoError(t, os.WriteFile(input, []byte(badgeSVG), 0o644))
	return dir, input
}

func TestICOAndVerifyCommands(t *testing.T) {
	dir, input := writeInput(t)
	output := filepath.Join(dir, "badge.ico")

	_, err := execute(t, "ico", "-i", input, "-o", output, "--sizes", "16,32,256")
	require.NoError(t, err)

	out, err := execute(t, "verify", output)
	require.NoError(t, err)
	assert.Contains(t, out, "ico")
	assert.Contains(t, out, "3 images")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "✓ ok"), out)
}

func TestICNSCommandWithoutRetina(t *testing.T) {
	dir, input := writeInput(t)
	output := filepath.Join(dir, "badge.icns")

	_, err := execute(t, "icns", "-i", input, "-o", output, "--sizes", "16,1024", "--retina=false")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	f, err := icns.Parse(data)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 1)
	assert.Equal(t, "ic04", f.Blocks[0].Type.String())
}

func TestICOCommandRejectsInvalidSize(t *testing.T) {
	dir, input := writeInput(t)
	output := filepath.Join(dir, "never.ico")

	_, err := execute(t, "ico", "-i", input, "-o", output, "--sizes", "0")
	require.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestVerifyCommandReportsFailure(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.ico")
	require.NoError(t, os.WriteFile(bogus, []byte("GIF89a"), 0o644))

	out, err := execute(t, "verify", bogus)
	require.Error(t, err)
	assert.Contains(t, out, pkg.ErrUnknownFormat.Error())
}

func resetFlag(t *testing.T, name, value string) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, rootCmd.PersistentFlags().Set(name, value))
	})
}

func TestFlagsOverrideInvalidEnvironment(t *testing.T) {
	resetFlag(t, "scaler", "catmullrom")
	resetFlag(t, "compression", "default")
	t.Setenv("SVGICON_SCALER", "sinc")
	t.Setenv("SVGICON_PNG_COMPRESSION", "maximum")

	dir, input := writeInput(t)
	output := filepath.Join(dir, "badge.ico")

	_, err := execute(t, "--scaler", "lanczos", "--compression", "best", "ico", "-i", input, "-o", output, "--sizes", "16")
	require.NoError(t, err)

	_, err = execute(t, "--scaler", "sinc", "ico", "-i", input, "-o", output, "--sizes", "16")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--scaler")
	assert.NotContains(t, err.Error(), "SVGICON_SCALER")
}

func TestLogFileClosedAfterRun(t *testing.T) {
	resetFlag(t, "log-level", "warn")
	t.Cleanup(closeLogFile)

	dir, input := writeInput(t)
	logPath := filepath.Join(dir, "svgicon.log")
	t.Setenv("SVGICON_LOG_PATH", logPath)

	output := filepath.Join(dir, "badge.ico")
	_, err := execute(t, "--log-level", "debug", "ico", "-i", input, "-o", output, "--sizes", "16")
	require.NoError(t, err)
	first := logFile
	require.NotNil(t, first)

	_, err = execute(t, "verify", output)
	require.NoError(t, err)
	require.NotNil(t, logFile)
	assert.NotSame(t, first, logFile)
	assert.Error(t, first.Close(), "previous handle should already be closed")

	closeLogFile()
	assert.Nil(t, logFile)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Configuration")
}
