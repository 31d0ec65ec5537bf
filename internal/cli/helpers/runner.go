package helpers

import (
	"os"

	"github.com/spf13/cobra"

	"gb.dev/gb/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution
// function. The context is opened for the working directory and closed,
// persisting the cache, once fn returns successfully.
func Run(cmd *cobra.Command, opts runtime.ContextOptions, fn func(ctx *runtime.Context) error) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	opts.SplogOptions.Writer = cmd.ErrOrStderr()
	ctx, err := runtime.GetContext(dir, opts)
	if err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		// A failed run leaves the persisted cache untouched
		_ = ctx.Splog.Close()
		return err
	}
	return ctx.Close()
}
