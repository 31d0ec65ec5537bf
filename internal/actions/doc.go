// Package actions provides high-level business logic for CLI commands.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the repository, cache and Splog
//   - Actions are stateless; cache persistence is handled by runtime.Context.Close
//   - Report rows go to the writer passed in, diagnostics go through Splog
//
// Dependencies:
//   - engine: Branch enumeration, range counting, sorting and filtering
//   - output: Row formatting
package actions
