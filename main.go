// ABOUTME: Entry point for the paws CLI
// ABOUTME: Terminal client for the UIO Paws adoption platform

package main

import (
	"fmt"
	"os"

	"github.com/uiopaws/pawsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
