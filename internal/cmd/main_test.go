package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	ui := cli.NewMockUi()
	initCommands(hclog.NewNullLogger(), ui)

	for _, name := range []string{"export", "runs", "version"} {
		factory, ok := Commands[name]
		require.True(t, ok, name)
		c, err := factory()
		require.NoError(t, err)
		assert.NotEmpty(t, c.Synopsis())
		assert.Contains(t, c.Help(), "Usage: dtif "+name)
	}

	c, err := Commands["version"]()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Run(nil))
	assert.Contains(t, ui.OutputWriter.String(), "dtif ")
}
