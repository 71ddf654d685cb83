package runs

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/internal/cmd/base"
	"github.com/hashicorp-forge/dtif/pkg/database"
	"github.com/hashicorp-forge/dtif/pkg/ledger"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

func seedLedger(t *testing.T, dsn string) {
	t.Helper()
	l, err := ledger.Open(database.Config{Driver: database.DriverSQLite, DSN: dsn}, nil)
	require.NoError(t, err)
	defer l.Close()

	started := time.Now().Add(-time.Hour)
	for i, doc := range []string{"Card", "Header", "Card"} {
		r := &transformer.RunReport{
			RunID:    fmt.Sprintf("run-%d", i),
			Attempt:  1,
			Document: doc,
			Started:  started.Add(time.Duration(i) * time.Minute),
			Finished: started.Add(time.Duration(i)*time.Minute + time.Second),
			Nodes:    4,
		}
		if i == 2 {
			r.Failed = []transformer.ItemOutcome{{
				Phase: transformer.PhaseAssets,
				Err:   transformer.NewError(transformer.KindUploadFailure, "a0", fmt.Errorf("503")),
			}}
		}
		require.NoError(t, l.RecordRun(context.Background(), r))
	}
}

func newCommand(t *testing.T) (*Command, *cli.MockUi, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "runs.db")
	seedLedger(t, dsn)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "dtif.hcl", []byte(fmt.Sprintf("ledger {\n  dsn = %q\n}\n", dsn)), 0o644))

	ui := cli.NewMockUi()
	return &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui), Fs: fs}, ui, dsn
}

func TestRuns(t *testing.T) {
	c, ui, _ := newCommand(t)
	require.Equal(t, 0, c.Run([]string{"-config", "dtif.hcl", "-verbose"}), ui.ErrorWriter.String())

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "run-2")
	assert.Contains(t, out, "partial")
	assert.Contains(t, out, "upload failure")
	assert.Contains(t, out, "2 completed, 1 partial, 0 failed")
}

func TestRunsDocumentFilter(t *testing.T) {
	c, ui, _ := newCommand(t)
	require.Equal(t, 0, c.Run([]string{"-config", "dtif.hcl", "-document", "Header"}))

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "run-1")
	assert.NotContains(t, out, "run-0")
}

func TestRunsPrune(t *testing.T) {
	c, ui, _ := newCommand(t)
	require.Equal(t, 0, c.Run([]string{"-config", "dtif.hcl", "-prune", "1m"}))
	assert.Contains(t, ui.OutputWriter.String(), "Pruned 3 runs")
	assert.Contains(t, ui.OutputWriter.String(), "No runs recorded")
}

func TestRunsErrors(t *testing.T) {
	c, ui, _ := newCommand(t)
	assert.Equal(t, 1, c.Run(nil))
	assert.Contains(t, ui.ErrorWriter.String(), "config flag is required")

	c, ui, _ = newCommand(t)
	require.NoError(t, afero.WriteFile(c.Fs, "empty.hcl", []byte(`name = "x"`), 0o644))
	assert.Equal(t, 1, c.Run([]string{"-config", "empty.hcl"}))
	assert.Contains(t, ui.ErrorWriter.String(), "no ledger block")
}
