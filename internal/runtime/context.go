package runtime

import (
	"fmt"

	"gb.dev/gb/internal/cache"
	"gb.dev/gb/internal/config"
	"gb.dev/gb/internal/engine"
	"gb.dev/gb/internal/git"
	"gb.dev/gb/internal/output"
)

// Context provides access to the repository, cache and output for commands
type Context struct {
	Repo     engine.Repository
	Cache    *cache.Store
	Config   *config.Config
	Splog    *output.Splog
	RepoRoot string
}

// NewContext creates a context around repo with an empty in-memory cache.
// Nothing is persisted when it is closed.
func NewContext(repo engine.Repository) *Context {
	return &Context{
		Repo:  repo,
		Cache: cache.NewStore(),
		Splog: output.NewSplog(),
	}
}

// ContextOptions controls how GetContext prepares the cache
type ContextOptions struct {
	// ClearCache discards the persisted cache before loading
	ClearCache bool
	// SplogOptions is used for the logger; log file settings come from config
	SplogOptions output.SplogOptions
}

// GetContext opens the repository containing dir, resolves configuration and
// loads the range count cache
func GetContext(dir string, opts ContextOptions) (*Context, error) {
	repo, err := git.OpenRepository(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repo.GetRepoRoot(), repo.GitDir())
	if err != nil {
		return nil, err
	}

	splogOpts := opts.SplogOptions
	splogOpts.Debug = splogOpts.Debug || cfg.Debug
	splogOpts.LogFile = cfg.LogFile
	splogOpts.MaxSize = cfg.LogMaxSize
	splogOpts.MaxBackups = cfg.LogMaxBackups
	splogOpts.MaxAge = cfg.LogMaxAge
	splog, err := output.NewSplogWithOptions(splogOpts)
	if err != nil {
		splog.Warn("%v", err)
	}

	ctx := &Context{
		Repo:     repo,
		Config:   cfg,
		Splog:    splog,
		RepoRoot: repo.GetRepoRoot(),
	}

	if opts.ClearCache {
		if err := cache.Clear(cfg.CachePath); err != nil {
			splog.Warn("failed to clear cache: %v", err)
		}
	}

	if !cfg.CacheEnabled {
		ctx.Cache = cache.NewStore()
		return ctx, nil
	}

	store, err := cache.LoadWithError(cfg.CachePath)
	if err != nil {
		splog.Debug("ignoring unreadable cache %s: %v", cfg.CachePath, err)
	} else {
		splog.Debug("loaded %d cached range counts from %s", store.Len(), cfg.CachePath)
	}
	ctx.Cache = store
	return ctx, nil
}

// Close persists the cache when it changed and releases the log file.
// Failing to persist is reported as a warning; the run still succeeds.
func (c *Context) Close() error {
	if c.Config != nil && c.Config.CacheEnabled && c.Cache != nil && c.Cache.Dirty() {
		if err := c.Cache.Dump(c.Config.CachePath); err != nil {
			c.Splog.Warn("failed to save cache: %v", err)
		} else {
			c.Splog.Debug("saved %d range counts to %s", c.Cache.Len(), c.Config.CachePath)
		}
	}
	if err := c.Splog.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
