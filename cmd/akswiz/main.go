// Package main is the entry point for the akswiz CLI.
//
// akswiz is a command-line wizard for designing Azure Kubernetes Service
// clusters. It collects choices into a YAML configuration, checks them,
// estimates their cost, and renders Terraform, Bicep, ARM, workflow and
// Kubernetes manifest files from them.
//
// Commands: init, generate, review, cost, recommend, assess, deploy,
// publish, theme.
//
// For detailed usage information, run:
//
//	akswiz --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/akswiz/cmd/akswiz/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
