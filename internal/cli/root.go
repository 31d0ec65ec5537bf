package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gb.dev/gb/internal/actions"
	"gb.dev/gb/internal/cli/helpers"
	"gb.dev/gb/internal/engine"
	"gb.dev/gb/internal/output"
	"gb.dev/gb/internal/runtime"
)

type rootFlags struct {
	ahead      int
	behind     int
	merged     bool
	noMerged   bool
	reverse    bool
	relative   bool
	noColor    bool
	clearCache bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var f rootFlags

	rootCmd := &cobra.Command{
		Use:   "gb",
		Short: "Show how far each local branch is ahead of and behind master",
		Long: `Show how far each local branch is ahead of and behind master.

Branches are listed with the most recently committed first. The checked out
branch is green, branches committed to in the last 14 days are yellow and
older branches are red. Colors are only used when writing to a terminal.

Commit counts are cached in .git/gb_cache.json, so repeated runs only walk
the history of branches that moved.`,
		Example: `  gb
  gb --ahead 0      # branches with nothing to merge
  gb --no-merged --reverse`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := compareOptions(cmd, f)
			if err != nil {
				return err
			}
			ctxOpts := runtime.ContextOptions{ClearCache: f.clearCache}
			return helpers.Run(cmd, ctxOpts, func(ctx *runtime.Context) error {
				return actions.CompareAction(ctx, opts, cmd.OutOrStdout())
			})
		},
	}

	rootCmd.Flags().IntVar(&f.ahead, "ahead", 0, "Only show branches exactly this many commits ahead of master")
	rootCmd.Flags().IntVar(&f.behind, "behind", 0, "Only show branches exactly this many commits behind master")
	rootCmd.Flags().BoolVar(&f.merged, "merged", false, "Only show branches fully merged into master")
	rootCmd.Flags().BoolVar(&f.noMerged, "no-merged", false, "Only show branches with commits not on master")
	rootCmd.Flags().BoolVarP(&f.reverse, "reverse", "r", false, "List the least recently committed branch first")
	rootCmd.Flags().BoolVar(&f.relative, "relative", false, "Append how long ago each branch was committed to")
	rootCmd.Flags().BoolVar(&f.noColor, "no-color", false, "Never color the output")
	rootCmd.Flags().BoolVar(&f.clearCache, "clear-cache", false, "Discard cached commit counts before running")
	rootCmd.MarkFlagsMutuallyExclusive("merged", "no-merged")

	rootCmd.SetVersionTemplate("gb {{.Version}}\n")

	return rootCmd
}

// compareOptions turns parsed flags into action options. Count filters only
// apply when their flag was given, so --ahead 0 is distinct from no filter.
func compareOptions(cmd *cobra.Command, f rootFlags) (actions.CompareOptions, error) {
	opts := actions.CompareOptions{
		Relative: f.relative,
		Color:    !f.noColor && output.ShouldColorize(cmd.OutOrStdout()),
	}

	if cmd.Flags().Changed("ahead") {
		if f.ahead < 0 {
			return opts, fmt.Errorf("invalid argument %d for \"--ahead\": must not be negative", f.ahead)
		}
		opts.Filter.Ahead = engine.Exactly(f.ahead)
	}
	if cmd.Flags().Changed("behind") {
		if f.behind < 0 {
			return opts, fmt.Errorf("invalid argument %d for \"--behind\": must not be negative", f.behind)
		}
		opts.Filter.Behind = engine.Exactly(f.behind)
	}

	switch {
	case f.merged:
		opts.Filter.Merged = engine.OnlyMerged
	case f.noMerged:
		opts.Filter.Merged = engine.OnlyUnmerged
	}

	if f.reverse {
		opts.Order = engine.OldestFirst
	}
	return opts, nil
}
