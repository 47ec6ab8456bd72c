package mc16

// device.go defines the contract every bus-mapped peripheral satisfies.

// Device is a bus-mapped peripheral. All addresses passed to a Device are
// device-local (zero-based from the mapping's base address); the Bus is
// responsible for translating bus addresses before calling in.
//
// Reads past the device's reported Size yield 0x00. Writes past Size are
// dropped. Multi-byte accesses are little-endian; a 16-bit access that
// straddles the end of the device reads 0x00 for the missing high byte and
// drops the out-of-range half of a write. No method may panic for an
// address within [0, Size()).
type Device interface {
	Read8(addr Word) uint8
	Read16(addr Word) Word
	Write8(addr Word, v uint8)
	Write16(addr Word, v Word)

	// Size reports the device's capacity in bytes.
	Size() int

	// Reset restores the device's power-on state. RAM zero-fills; ROM is a
	// no-op so its contents survive a reset.
	Reset()

	// Peek returns a read-only copy of n bytes starting at addr. It is an
	// out-of-band interface for programmers/loaders, not a bus access.
	Peek(addr Word, n int) []byte

	// Poke overwrites bytes starting at addr, bypassing the device's normal
	// write semantics (in particular, it mutates ROM).
	Poke(addr Word, data []byte)

	// Name identifies the device for diagnostics and log lines.
	Name() string
}
