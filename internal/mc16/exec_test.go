package mc16

import "testing"

func newProgramCPU(t *testing.T, program map[Word]Word) *CPU {
	t.Helper()

	bus := NewBus()
	if _, err := bus.Map(0, NumBlocks/2, NewRAM(NumBlocks/2*BlockSize)); err != nil {
		t.Fatalf("map RAM: %v", err)
	}

	rom := NewROM(NumBlocks / 2 * BlockSize)
	if _, err := bus.Map(NumBlocks/2, NumBlocks/2, rom); err != nil {
		t.Fatalf("map ROM: %v", err)
	}

	// Reset zero-fills RAM, so the reset vector and code at 0x8000 and up
	// are poked into ROM before Reset, and RAM data is written after it.
	const romBase = Word(NumBlocks / 2 * BlockSize)

	rom.Poke(ResetVectorAddr-romBase, []byte{0x00, 0x80})

	for addr, w := range program {
		if addr >= romBase {
			rom.Poke(addr-romBase, []byte{byte(w), byte(w >> 8)})
		}
	}

	cpu := NewWithBus(bus)
	cpu.Reset()

	for addr, w := range program {
		if addr < romBase {
			bus.Write16(addr, w)
		}
	}

	return cpu
}

// TestProcess_STP_NoOperandResolution confirms STP consumes only the
// instruction word itself: PC advances by exactly 2, not by however many
// bytes its (unused) Immediate/Immediate operand fields would otherwise
// require.
func TestProcess_STP_NoOperandResolution(t *testing.T) {
	stp := Encode(OpSTP, Width16, HalfLow, ModeImmediate, ModeImmediate)

	cpu := newProgramCPU(t, map[Word]Word{0x8000: Word(stp)})

	cpu.Process(false, nil)

	if cpu.PC != 0x8002 {
		t.Errorf("PC after STP = %s, want 0x8002 (no operand bytes consumed)", cpu.PC)
	}

	if cpu.State() != Off {
		t.Errorf("State after STP = %s, want OFF", cpu.State())
	}
}

func TestProcess_OffCPUDoesNothing(t *testing.T) {
	cpu := newProgramCPU(t, nil)
	cpu.state = Off
	cpu.PC = 0x9000

	cpu.Process(false, nil)

	if cpu.PC != 0x9000 {
		t.Errorf("PC changed while Off: %s", cpu.PC)
	}
}

func TestProcess_MOV_ImmediateToRegister(t *testing.T) {
	// MOV A, #0xbeef
	mov := Encode(OpMOV, Width16, HalfLow, ModeA, ModeImmediate)

	cpu := newProgramCPU(t, map[Word]Word{
		0x8000: Word(mov),
		0x8002: 0xbeef,
	})

	cpu.Process(false, nil)

	if got := cpu.getRegister(RegA); got != 0xbeef {
		t.Errorf("RegA = %s, want 0xbeef", got)
	}

	if cpu.PC != 0x8004 {
		t.Errorf("PC = %s, want 0x8004 (instruction word + imm16)", cpu.PC)
	}
}

func TestProcess_ADC_MemoryDestination(t *testing.T) {
	// ADC [0x3000], A  (dst = abs, src = A)
	adc := Encode(OpADC, Width16, HalfLow, ModeAbs, ModeA)

	cpu := newProgramCPU(t, map[Word]Word{
		0x8000: Word(adc),
		0x8002: 0x3000,
		0x3000: 0x0005,
	})
	cpu.setRegister(RegA, 0x0003)

	cpu.Process(false, nil)

	if got := cpu.Bus.Read16(0x3000); got != 0x0008 {
		t.Errorf("[0x3000] = %s, want 0x0008", got)
	}

	if cpu.PC != 0x8004 {
		t.Errorf("PC = %s, want 0x8004", cpu.PC)
	}
}

func TestProcess_RST_ReinitializesMachine(t *testing.T) {
	rst := Encode(OpRST, Width16, HalfLow, ModeImmediate, ModeImmediate)

	cpu := newProgramCPU(t, map[Word]Word{0x8000: Word(rst)})
	cpu.setRegister(RegB, 0xffff)

	cpu.Process(false, nil)

	if cpu.getRegister(RegB) != 0 {
		t.Errorf("RegB after RST = %s, want 0", cpu.getRegister(RegB))
	}

	if cpu.PC != 0x8000 {
		t.Errorf("PC after RST = %s, want 0x8000 (relatched from reset vector)", cpu.PC)
	}

	if cpu.State() != Running {
		t.Errorf("State after RST = %s, want RUNNING", cpu.State())
	}
}

func TestProcess_UnrecognizedOpcodeIsNOP(t *testing.T) {
	// op bits 0x3f is not MOV/ADC/SBC/STP/RST.
	nop := Instruction(0x003f)

	cpu := newProgramCPU(t, map[Word]Word{0x8000: Word(nop)})
	cpu.setRegister(RegA, 0x1234)

	cpu.Process(false, nil)

	if cpu.getRegister(RegA) != 0x1234 {
		t.Errorf("RegA changed by NOP: %s", cpu.getRegister(RegA))
	}

	if cpu.PC != 0x8002 {
		t.Errorf("PC after NOP = %s, want 0x8002", cpu.PC)
	}

	if cpu.State() != Running {
		t.Errorf("State after NOP = %s, want RUNNING", cpu.State())
	}
}

// TestProcess_IndexedIndirectRoundTrip exercises MOV through a [[Y+X]]
// source into an [abs,X] destination in one instruction.
func TestProcess_IndexedIndirectRoundTrip(t *testing.T) {
	mov := Encode(OpMOV, Width16, HalfLow, ModeAbsX, ModeYXInd)

	cpu := newProgramCPU(t, map[Word]Word{
		0x8000: Word(mov),
		0x8002: 0x4000, // dst abs base
		0x5002: 0x6000, // [Y+X] pointer cell
		0x6000: 0x7777, // the value
	})
	cpu.setRegister(RegY, 0x5000)
	cpu.setRegister(RegX, 0x0002)

	cpu.Process(false, nil)

	if got := cpu.Bus.Read16(0x4002); got != 0x7777 {
		t.Errorf("[0x4000+X] = %s, want 0x7777", got)
	}
}
