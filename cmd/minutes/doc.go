// Package main hosts the minutes CLI entrypoint and command graph.
//
// Each formats subcommand boots the format catalog from the local store,
// issues exactly one manager command, and renders the resulting snapshot as
// a table, plain lines, or JSON. Configuration, logging and localization are
// resolved once per invocation by the shared command context.
package main
