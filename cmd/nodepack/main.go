// Package main provides the entry point for the nodepack build-recipe helper CLI.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
