package runs

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/dtif/internal/cmd/base"
	"github.com/hashicorp-forge/dtif/internal/config"
	"github.com/hashicorp-forge/dtif/pkg/ledger"
)

type Command struct {
	*base.Command

	Fs afero.Fs

	flagConfig   string
	flagDocument string
	flagLimit    int
	flagPrune    time.Duration
	flagVerbose  bool
}

func (c *Command) Synopsis() string {
	return "List recorded export runs"
}

func (c *Command) Help() string {
	return `Usage: dtif runs [options]

  This command lists the most recent export runs from the run ledger
  configured in the ledger block, followed by run counts per status.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("runs", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "(Required) Path to the configuration file",
	)
	f.StringVar(
		&c.flagDocument, "document", "", "Only list runs of this document.",
	)
	f.IntVar(
		&c.flagLimit, "limit", 20, "Number of runs to list.",
	)
	f.DurationVar(
		&c.flagPrune, "prune", 0, "Remove runs older than this before listing.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false, "Print failed and dropped items of each run.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" {
		ui.Error("config flag is required")
		return 1
	}
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}

	cfg, err := config.LoadFile(c.Fs, c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if cfg.Ledger == nil {
		ui.Error("configuration has no ledger block")
		return 1
	}

	l, err := ledger.Open(cfg.Ledger.Database(), c.Log)
	if err != nil {
		ui.Error(fmt.Sprintf("error opening run ledger: %v", err))
		return 1
	}
	defer l.Close()

	ctx := context.Background()

	if c.flagPrune > 0 {
		n, err := l.Prune(ctx, c.flagPrune)
		if err != nil {
			ui.Error(fmt.Sprintf("error pruning runs: %v", err))
			return 1
		}
		ui.Info(fmt.Sprintf("Pruned %d runs older than %s", n, c.flagPrune))
	}

	runs, err := l.Recent(ctx, c.flagDocument, c.flagLimit)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing runs: %v", err))
		return 1
	}
	if len(runs) == 0 {
		ui.Info("No runs recorded")
		return 0
	}
	ui.Output(formatRuns(runs, c.flagVerbose))

	stats, err := l.Stats(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error counting runs: %v", err))
		return 1
	}
	ui.Output(fmt.Sprintf("\n%d completed, %d partial, %d failed",
		stats[ledger.StatusCompleted], stats[ledger.StatusPartial], stats[ledger.StatusFailed]))

	return 0
}

func formatRuns(runs []ledger.Run, verbose bool) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tDOCUMENT\tATTEMPT\tSTATUS\tSTARTED\tDURATION\tNODES\tPAINTS\tASSETS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.RunID, r.Document, r.Attempt, r.Status,
			r.StartedAt.Local().Format(time.DateTime), r.Duration(),
			r.Nodes, r.Paints, r.Assets)
		if !verbose {
			continue
		}
		for _, f := range r.Failed {
			fmt.Fprintf(w, "  failed\t%s\t%s\t%s\n", f.Item, f.Kind, f.Error)
		}
		for _, d := range r.Dropped {
			fmt.Fprintf(w, "  dropped\t%s\t%s\t%s\n", d.Item, d.Kind, d.Error)
		}
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
