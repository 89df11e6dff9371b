// Package main is the entry point for the vellum CLI.
package main

import "github.com/vellumcad/vellum/internal/cli"

func main() {
	cli.Execute()
}
