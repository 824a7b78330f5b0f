// ABOUTME: Entry point for the ln2-sizer CLI
// ABOUTME: Scriptable sizing commands and the interactive calculator

package main

import (
	"fmt"
	"os"

	"github.com/MaxParisotto/amr-ln2-generator/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
