// ABOUTME: Entry point for the moto-admin back office
// ABOUTME: Command-line tool and terminal console for store administration

package main

import (
	"fmt"
	"os"

	"github.com/markalston/moto-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
