// Package base holds what every dtif subcommand shares.
package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every subcommand.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a base command.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}

// SetLogLevel sets the command logger's level from a level name and reports
// whether the name was valid.
func (c *Command) SetLogLevel(level string) bool {
	l := hclog.LevelFromString(level)
	if l == hclog.NoLevel {
		return false
	}
	c.Log.SetLevel(l)
	return true
}
