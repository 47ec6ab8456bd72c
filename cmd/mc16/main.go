// Command mc16 is a harness for the mc16 CPU emulator: it loads ROM/RAM
// images onto the bus, primes the interrupt vectors, and runs the
// fetch-execute loop, optionally under an interactive console.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mc16",
		Short: "mc16 — a 16-bit CPU and bus emulator",
	}

	root.AddCommand(newRunCmd())

	return root
}
