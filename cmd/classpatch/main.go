// Package main provides the CLI entrypoint for classpatch.
//
// classpatch scans the built-in patches into transformer units and runs
// them over class files:
//   - scan lists the units the current services and mappings produce
//   - apply transforms class files and reports per-class outcomes
//   - check validates a mapping file
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
