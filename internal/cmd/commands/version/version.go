package version

import (
	"github.com/hashicorp-forge/dtif/internal/cmd/base"
	"github.com/hashicorp-forge/dtif/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of dtif"
}

func (c *Command) Help() string {
	return `Usage: dtif version

  This command prints the version of dtif.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("dtif " + version.String())
	return 0
}
