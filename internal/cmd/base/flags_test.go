package base

import (
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
)

func TestFlagSetHelp(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("export", flag.ContinueOnError))
	assert.Empty(t, f.Help())

	var attempts int
	var dryRun bool
	f.IntVar(&attempts, "attempts", 1, "Number of runs")
	f.BoolVar(&dryRun, "dry-run", false, "Skip writing")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-attempts=1\n      Number of runs")
	assert.Contains(t, help, "-dry-run\n      Skip writing")

	assert.Error(t, f.Parse([]string{"-unknown"}), "parse errors are returned, not printed")
}

func TestSetLogLevel(t *testing.T) {
	c := NewCommand(hclog.New(&hclog.LoggerOptions{Level: hclog.Info}), cli.NewMockUi())
	assert.True(t, c.SetLogLevel("debug"))
	assert.True(t, c.Log.IsDebug())
	assert.False(t, c.SetLogLevel("loud"))
}
