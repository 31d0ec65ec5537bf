// Package config resolves gb settings for a repository.
//
// Settings come from, in increasing precedence:
//   - Built-in defaults
//   - The optional repository config file (.git/.gb_config, JSON)
//   - Environment variables (GB_CACHE, GB_CACHE_FILE, GB_LOG_*, GB_DEBUG, DEBUG)
//
// The reference branch is not configurable.
package config
