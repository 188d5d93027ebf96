// Package main is the entry point for the modconcat CLI.
package main

import "modconcat.dev/pkg/modconcat/cmd"

func main() {
	cmd.Execute()
}
