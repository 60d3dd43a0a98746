// Package main provides the entry point for the codemap CLI tool.
package main

import (
	"github.com/wasmregistry/codemap/cmd/codemap/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
