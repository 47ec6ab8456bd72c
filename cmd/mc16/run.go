package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/smoynes/mc16/internal/console"
	"github.com/smoynes/mc16/internal/log"
	"github.com/smoynes/mc16/internal/mc16"
)

func newRunCmd() *cobra.Command {
	var (
		romPath     string
		romBlocks   int
		ramBlocks   int
		resetAddr   uint16
		steps       int
		interactive bool
		trace       bool
		dumpOnExit  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a ROM image and run the machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			// ROM sits at the top of the address space so it naturally
			// covers the reset/NMI/IRQ vector table (0xFFFA-0xFFFF);
			// RAM fills everything below it.
			romBase := mc16.Word((mc16.NumBlocks - romBlocks) * mc16.BlockSize)

			rom := mc16.NewROM(romBlocks * mc16.BlockSize)

			if romPath != "" {
				n, err := loadImage(rom, romPath, 0)
				if err != nil {
					return err
				}

				fmt.Printf("loaded %d bytes at %s\n", n, romBase)
			}

			primeVector(rom, mc16.ResetVectorAddr-romBase, mc16.Word(resetAddr))

			bus := mc16.NewBus()

			if ramBlocks > 0 {
				ram := mc16.NewRAM(ramBlocks * mc16.BlockSize)
				if _, err := bus.Map(0, ramBlocks, ram); err != nil {
					return fmt.Errorf("mc16: map ram: %w", err)
				}
			}

			if _, err := bus.Map(mc16.NumBlocks-romBlocks, romBlocks, rom); err != nil {
				return fmt.Errorf("mc16: map rom: %w", err)
			}

			cpu := mc16.NewWithBus(bus)
			cpu.Reset()

			if trace {
				log.LogLevel.Set(log.Debug)
			}

			if interactive {
				return runInteractive(cpu)
			}

			return runHeadless(cmd.Context(), cpu, steps, dumpOnExit)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&romPath, "rom", "", "path to a flat ROM image")
	flags.IntVar(&romBlocks, "rom-blocks", 1, "number of 4 KiB blocks to map the ROM onto, at the top of the address space (covers the vector table)")
	flags.IntVar(&ramBlocks, "ram-blocks", mc16.NumBlocks-1, "number of 4 KiB blocks to map RAM onto, starting at block 0")
	flags.Uint16Var(&resetAddr, "reset", 0, "address poked into the reset vector before first Reset")
	flags.IntVar(&steps, "steps", 0, "number of cycles to run headless (0 = until STP)")
	flags.BoolVar(&interactive, "interactive", false, "drive the machine from an interactive console")
	flags.BoolVar(&trace, "trace", false, "enable per-cycle debug logging")
	flags.BoolVar(&dumpOnExit, "dump", false, "print a register/status snapshot on exit")

	return cmd
}

func runInteractive(cpu *mc16.CPU) error {
	con, err := console.New(cpu, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("mc16: %w", err)
	}

	defer con.Restore()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return con.Run(ctx)
}

func runHeadless(ctx context.Context, cpu *mc16.CPU, steps int, dumpOnExit bool) error {
	for i := 0; steps == 0 || i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if cpu.State() == mc16.Off {
			break
		}

		cpu.Process(false, nil)
	}

	if dumpOnExit {
		fmt.Println(cpu.Snapshot())
	}

	return nil
}
