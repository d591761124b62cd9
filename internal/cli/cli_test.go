package cli_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/internal/app"
	"github.com/katalvlaran/gridpath/internal/cli"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := cli.Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, exit)
	want := app.DefaultConfig()
	assert.Equal(t, &want, cfg)
	assert.Equal(t, 50*time.Millisecond, cfg.Interval)
}

func TestParse_Flags(t *testing.T) {
	cfg, _, err := cli.Parse([]string{
		"-mode", "ANIMATE",
		"-interval", "10ms",
		"-log-level", "Debug",
		"-log-format", "json",
		"-metrics-addr", ":9090",
		"maze.hcl",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "maze.hcl", cfg.ScenarioPath)
	assert.Equal(t, app.ModeAnimate, cfg.Mode)
	assert.Equal(t, 10*time.Millisecond, cfg.Interval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)

	cfg, _, err = cli.Parse([]string{"-scenario", "a.hcl", "-size", "7"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.ScenarioPath)
	assert.Equal(t, 7, cfg.Size)
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-metrics-addr")
}

func TestParse_Errors(t *testing.T) {
	cases := map[string][]string{
		"UnknownFlag":    {"-nope"},
		"BadMode":        {"-mode", "fly"},
		"BadLogFormat":   {"-log-format", "xml"},
		"BadLogLevel":    {"-log-level", "loud"},
		"ZeroSize":       {"-size", "0"},
		"NegativeDelay":  {"-interval", "-1s"},
		"TwoScenarios":   {"a.hcl", "b.hcl"},
		"FlagAndArg":     {"-scenario", "a.hcl", "b.hcl"},
		"BadIntervalVal": {"-interval", "soon"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, exit, err := cli.Parse(args, &bytes.Buffer{})
			assert.Nil(t, cfg)
			assert.False(t, exit)
			var exitErr *cli.ExitError
			require.True(t, errors.As(err, &exitErr), "want *ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
