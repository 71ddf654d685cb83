package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/dtif/internal/cmd/base"
	"github.com/hashicorp-forge/dtif/internal/cmd/commands/export"
	"github.com/hashicorp-forge/dtif/internal/cmd/commands/runs"
	"github.com/hashicorp-forge/dtif/internal/cmd/commands/version"
)

// Commands is the mapping of all available dtif commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"export": func() (cli.Command, error) {
			return &export.Command{Command: b}, nil
		},
		"runs": func() (cli.Command, error) {
			return &runs.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
