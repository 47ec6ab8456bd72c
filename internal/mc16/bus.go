package mc16

// bus.go is the machine's memory controller: a block-indexed dispatch
// fabric that routes reads and writes to mapped devices.

import (
	"errors"
	"fmt"

	"github.com/smoynes/mc16/internal/log"
)

const (
	// BlockSize is the size, in bytes, of one mapping block -- the atomic
	// unit of bus dispatch.
	BlockSize = 0x1000

	// NumBlocks is the number of blocks spanning the 64 KiB address space.
	NumBlocks = 0x10000 / BlockSize
)

var (
	errBus = errors.New("bus")

	// ErrOverlap is returned by Map when the requested blocks are already
	// owned by another mapping.
	ErrOverlap = fmt.Errorf("%w: overlap", errBus)

	// ErrOutOfRange is returned by Map, Unmap or Get when a block range or
	// handle is outside the legal domain.
	ErrOutOfRange = fmt.Errorf("%w: out of range", errBus)
)

// mapping associates a contiguous run of blocks, starting at a block-aligned
// base address, with the device that owns them.
type mapping struct {
	base   Word
	blocks int
	device Device
}

// Bus is the memory controller: it maps the 64 KiB address space onto
// devices in fixed-size blocks and dispatches reads and writes in constant
// time via a block table.
type Bus struct {
	// block names, per block, the index into mappings that owns it, or -1
	// if the block is unmapped.
	block [NumBlocks]int

	mappings []mapping

	log *log.Logger
}

// NewBus creates an empty memory controller with no mapped devices.
func NewBus() *Bus {
	bus := &Bus{log: log.DefaultLogger()}

	for i := range bus.block {
		bus.block[i] = -1
	}

	return bus
}

// Map installs a device starting at baseBlock, occupying blockCount
// consecutive blocks, and returns a handle for later Get/Unmap calls. It
// fails with ErrOverlap if any target block is already owned, or
// ErrOutOfRange if the block range doesn't fit in the address space.
func (b *Bus) Map(baseBlock, blockCount int, device Device) (int, error) {
	if baseBlock < 0 || blockCount <= 0 || baseBlock+blockCount > NumBlocks {
		return -1, fmt.Errorf("%w: map: blocks %d+%d", ErrOutOfRange, baseBlock, blockCount)
	}

	for i := baseBlock; i < baseBlock+blockCount; i++ {
		if b.block[i] != -1 {
			return -1, fmt.Errorf("%w: map: block %d owned by mapping %d", ErrOverlap, i, b.block[i])
		}
	}

	b.mappings = append(b.mappings, mapping{
		base:   Word(baseBlock * BlockSize),
		blocks: blockCount,
		device: device,
	})

	handle := len(b.mappings) - 1

	for i := baseBlock; i < baseBlock+blockCount; i++ {
		b.block[i] = handle
	}

	b.log.Debug("mapped device",
		log.String("DEVICE", device.Name()),
		log.String("BASE", Word(baseBlock*BlockSize).String()),
		"BLOCKS", blockCount,
		"HANDLE", handle,
	)

	return handle, nil
}

// Unmap removes the mapping named by handle. It uses index-stable
// swap-removal: the last mapping takes the removed slot's index, and every
// block slot naming either the removed or moved mapping is rewritten. A
// handle for any mapping other than the one that moved remains valid; a
// caller holding the handle for the moved (formerly last) mapping must
// re-query with Get to find its new index.
func (b *Bus) Unmap(handle int) error {
	if handle < 0 || handle >= len(b.mappings) {
		return fmt.Errorf("%w: unmap: handle %d", ErrOutOfRange, handle)
	}

	last := len(b.mappings) - 1

	b.mappings[handle] = b.mappings[last]
	b.mappings = b.mappings[:last]

	for i, h := range b.block {
		switch h {
		case handle:
			b.block[i] = -1
		case last:
			b.block[i] = handle
		}
	}

	// The removed mapping and the moved mapping were the same slot; the
	// block rewrite above already cleared it correctly in that case since
	// handle == last matches the first case.

	b.log.Debug("unmapped device", "HANDLE", handle)

	return nil
}

// Get returns the device installed at handle.
func (b *Bus) Get(handle int) (Device, error) {
	if handle < 0 || handle >= len(b.mappings) {
		return nil, fmt.Errorf("%w: get: handle %d", ErrOutOfRange, handle)
	}

	return b.mappings[handle].device, nil
}

// Read8 reads one byte from the bus. Unmapped addresses read as 0x00.
func (b *Bus) Read8(addr Word) uint8 {
	m, off, ok := b.lookup(addr)
	if !ok {
		return 0x00
	}

	return m.device.Read8(off)
}

// Read16 reads a little-endian word from the bus. A word that straddles two
// blocks is read as two 8-bit accesses, combined little-endian, which
// observably matches two sequential Read8 calls.
func (b *Bus) Read16(addr Word) Word {
	if addr/BlockSize == (addr+1)/BlockSize {
		if m, off, ok := b.lookup(addr); ok {
			return m.device.Read16(off)
		}

		return 0x0000
	}

	lo := Word(b.Read8(addr))
	hi := Word(b.Read8(addr + 1))

	return lo | hi<<8
}

// Write8 writes one byte to the bus. Writes to unmapped addresses are
// silently dropped.
func (b *Bus) Write8(addr Word, v uint8) {
	if m, off, ok := b.lookup(addr); ok {
		m.device.Write8(off, v)
	}
}

// Write16 writes a little-endian word to the bus, using the same
// straddling rule as Read16.
func (b *Bus) Write16(addr Word, v Word) {
	if addr/BlockSize == (addr+1)/BlockSize {
		if m, off, ok := b.lookup(addr); ok {
			m.device.Write16(off, v)
		}

		return
	}

	b.Write8(addr, byte(v))
	b.Write8(addr+1, byte(v>>8))
}

// Reset invokes Reset on every mapped device, exactly once, in unspecified
// order.
func (b *Bus) Reset() {
	for _, m := range b.mappings {
		m.device.Reset()
	}
}

// lookup translates a bus address to its owning mapping and device-local
// offset.
func (b *Bus) lookup(addr Word) (mapping, Word, bool) {
	block := int(addr) / BlockSize

	handle := b.block[block]
	if handle == -1 {
		return mapping{}, 0, false
	}

	m := b.mappings[handle]

	return m, addr - m.base, true
}

// String renders a one-line-per-mapping diagnostic dump of the block map.
func (b *Bus) String() string {
	s := "BUS:\n"

	for i, m := range b.mappings {
		s += fmt.Sprintf("  [%d] %s @ %s (%d blocks, %d bytes)\n",
			i, m.device.Name(), m.base, m.blocks, m.device.Size())
	}

	return s
}
