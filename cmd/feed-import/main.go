// Package main is the entry point for the feed-import CLI
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
