package main

import (
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{}
	registerFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))

	return cmd
}

func TestBuildPolicy_Defaults(t *testing.T) {
	t.Parallel()

	policy, err := buildPolicy(parseFlags(t))
	require.NoError(t, err)

	assert.True(t, policy.DryRun)
	assert.False(t, policy.KeepSource)
	assert.False(t, policy.CopySymlinks)
	assert.False(t, policy.Clobber)
	assert.Zero(t, policy.MaxSizeBytes)
	assert.Nil(t, policy.Extensions)
	assert.Equal(t, 1, policy.Verbosity)
}

func TestBuildPolicy_DryRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantDryRun bool
	}{
		{name: "no flags", wantDryRun: true},
		{name: "test only", args: []string{"-t"}, wantDryRun: true},
		{name: "force only", args: []string{"-f"}, wantDryRun: false},
		{name: "test wins over force", args: []string{"-t", "-f"}, wantDryRun: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy, err := buildPolicy(parseFlags(t, tt.args...))
			require.NoError(t, err)

			assert.Equal(t, tt.wantDryRun, policy.DryRun)
		})
	}
}

func TestBuildPolicy_Small(t *testing.T) {
	t.Parallel()

	policy, err := buildPolicy(parseFlags(t, "-s", "100"))
	require.NoError(t, err)
	assert.EqualValues(t, 100*1024, policy.MaxSizeBytes)

	_, err = buildPolicy(parseFlags(t, "-s", "0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedFlag)
}

func TestBuildPolicy_Extensions(t *testing.T) {
	t.Parallel()

	policy, err := buildPolicy(parseFlags(t, "-e", "MKV,.avi, mp4"))
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{
		"mkv": {},
		"avi": {},
		"mp4": {},
	}, policy.Extensions)

	_, err = buildPolicy(parseFlags(t, "-e", " ,."))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedFlag)
}

func TestBuildPolicy_Verbosity(t *testing.T) {
	t.Parallel()

	policy, err := buildPolicy(parseFlags(t, "-vv"))
	require.NoError(t, err)
	assert.Equal(t, 3, policy.Verbosity)

	policy, err = buildPolicy(parseFlags(t, "-q"))
	require.NoError(t, err)
	assert.Equal(t, 0, policy.Verbosity)
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelError, logLevel(-1))
	assert.Equal(t, slog.LevelError, logLevel(0))
	assert.Equal(t, slog.LevelWarn, logLevel(1))
	assert.Equal(t, slog.LevelInfo, logLevel(2))
	assert.Equal(t, slog.LevelDebug, logLevel(3))
}
