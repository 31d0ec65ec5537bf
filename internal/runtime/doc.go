// Package runtime provides the execution context for gb commands.
//
// It encapsulates shared dependencies needed by actions: the repository,
// the range count cache, resolved configuration and the logger.
package runtime
