// Package pagination provides shared limit and sort handling for CLI
// commands that print record lists.
//
// Interactive screens window their output, but --output table/json dumps
// can be large, so commands accept --limit and --sort flags whose parsing
// and validation live here to stay consistent across commands.
package pagination
