package actions

import (
	"io"
	"time"

	"gb.dev/gb/internal/engine"
	"gb.dev/gb/internal/output"
	"gb.dev/gb/internal/runtime"
)

// CompareOptions contains options for comparing branches against the reference branch
type CompareOptions struct {
	Filter   engine.Filter
	Order    engine.SortOrder
	Relative bool
	Color    bool

	// StaleAfter overrides the configured stale threshold when positive
	StaleAfter time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

// CompareAction prints one row per local branch with its ahead and behind
// counts relative to the reference branch.
//
// Every branch is compared before filtering, so the cache ends up the same
// whatever filter is used. Any failure aborts the run before a row is written.
func CompareAction(ctx *runtime.Context, opts CompareOptions, w io.Writer) error {
	snapshots, err := engine.NewEnumerator(ctx.Repo).Enumerate()
	if err != nil {
		return err
	}
	ctx.Splog.Debug("found %d local branches", len(snapshots))

	counter := engine.NewCounter(ctx.Repo, ctx.Cache, ctx.Splog)
	if err := engine.CompareAll(snapshots, counter); err != nil {
		return err
	}
	stats := counter.Stats()
	ctx.Splog.Debug("range counts: %d trivial, %d cached, %d computed", stats.Trivial, stats.Hits, stats.Misses)

	engine.SortByRecency(snapshots, opts.Order)
	rows := opts.Filter.Apply(snapshots)

	presenter := output.NewPresenter(w, output.PresenterOptions{
		Color:      opts.Color,
		Relative:   opts.Relative,
		StaleAfter: staleAfter(ctx, opts),
		Now:        opts.Now,
	})
	return presenter.Present(rows)
}

func staleAfter(ctx *runtime.Context, opts CompareOptions) time.Duration {
	if opts.StaleAfter > 0 {
		return opts.StaleAfter
	}
	if ctx.Config != nil {
		return ctx.Config.StaleAfter
	}
	return 0
}
