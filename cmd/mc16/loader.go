package main

// loader.go is a minimal binary image loader for the harness: loading and
// vector priming are harness responsibilities, not core-device ones, so
// they live here rather than in internal/mc16.
//
// This ISA has no object-file format, so an image is just a flat binary
// poked at a given origin, with no header to parse.

import (
	"fmt"
	"os"

	"github.com/smoynes/mc16/internal/mc16"
)

// loadImage reads the file at path and pokes its bytes into dev starting
// at origin.
func loadImage(dev mc16.Device, path string, origin mc16.Word) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("mc16: load image: %w", err)
	}

	dev.Poke(origin, data)

	return len(data), nil
}

// primeVector pokes a little-endian address into dev at a vector's
// address, for seeding the reset, NMI, or an IRQ table slot before the
// machine's first Reset.
func primeVector(dev mc16.Device, vector, addr mc16.Word) {
	dev.Poke(vector, []byte{byte(addr), byte(addr >> 8)})
}
