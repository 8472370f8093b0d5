// Command z80core wires a CPU, a pair of PIOs, a CTC and an interrupt
// daisychain into a minimal host and runs a ROM image against them:
// one Bus implementation gluing everything together, reduced to the
// host contract the core actually requires — a ROM-loading flag and a
// fixed step budget.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/z80core/internal/machine"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80core",
		Short: "Z80 CPU/PIO/CTC emulator core",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var romPath string
	var loadAddr uint16
	var startAddr uint16
	var steps int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a ROM image and run it for a fixed number of instructions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := machine.New(romPath, loadAddr, startAddr)
			if err != nil {
				return err
			}
			cycles := sys.Run(steps)
			fmt.Printf("ran %d instructions, %d T-states\n", steps, cycles)
			fmt.Println(sys.CPU.Reg.DumpString())
			return nil
		},
	}

	cmd.Flags().StringVar(&romPath, "rom", "", "path to a ROM image to load (required)")
	cmd.Flags().Uint16Var(&loadAddr, "load-addr", 0x0000, "address to map the ROM image at")
	cmd.Flags().Uint16Var(&startAddr, "start-addr", 0x0000, "initial PC")
	cmd.Flags().IntVar(&steps, "steps", 1000, "number of instructions to execute")
	cmd.MarkFlagRequired("rom")

	return cmd
}
