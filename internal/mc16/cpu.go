package mc16

// cpu.go assembles the virtual machine from its smaller parts: registers,
// status, bus, and the fetch-execute state machine.

import (
	"fmt"

	"github.com/smoynes/mc16/internal/log"
)

// GPR identifies one of the CPU's six general/index registers.
type GPR uint8

// General-purpose and index registers.
const (
	RegA GPR = iota
	RegB
	RegC
	RegD
	RegX
	RegY

	NumGPR
)

func (r GPR) String() string {
	names := [NumGPR]string{"A", "B", "C", "D", "X", "Y"}
	if int(r) < len(names) {
		return names[r]
	}

	return "?"
}

// RegisterFile is the set of general-purpose and index registers.
type RegisterFile [NumGPR]Register

func (rf RegisterFile) String() string {
	s := ""
	for i, r := range rf {
		s += fmt.Sprintf("%s: %s ", GPR(i), r)
	}

	return s
}

func (rf RegisterFile) LogValue() log.Value {
	return log.GroupValue(
		log.String("A", rf[RegA].String()),
		log.String("B", rf[RegB].String()),
		log.String("C", rf[RegC].String()),
		log.String("D", rf[RegD].String()),
		log.String("X", rf[RegX].String()),
		log.String("Y", rf[RegY].String()),
	)
}

// State is the CPU's run state.
type State uint8

const (
	// Off: the CPU does not process instructions or interrupts.
	Off State = iota
	// Running: normal fetch-execute cycle.
	Running
	// Waiting: halted, awaiting an interrupt. No defined operation
	// transitions the CPU into this state; see intr.go.
	Waiting
)

func (s State) String() string {
	switch s {
	case Off:
		return "OFF"
	case Running:
		return "RUNNING"
	case Waiting:
		return "WAITING"
	default:
		return "?"
	}
}

// Reserved interrupt vector addresses, high end of the address space.
const (
	IRQTableBaseAddr Word = 0xfffa
	NMIVectorAddr    Word = 0xfffc
	ResetVectorAddr  Word = 0xfffe
)

// CPU is the emulated processor: registers, status, bus, and run state.
type CPU struct {
	Reg RegisterFile
	PC  Word
	SP  Register // Reserved; not exercised by the operations this core defines.
	IR  Instruction

	Status StatusRegister
	state  State

	Bus *Bus

	log *log.Logger
}

// New constructs a CPU wired to a fresh, empty Bus. The CPU starts Off with
// all registers zeroed; call Reset to bring it up.
func New() *CPU {
	return &CPU{
		Bus: NewBus(),
		log: log.DefaultLogger(),
	}
}

// NewWithBus constructs a CPU wired to an already-configured Bus (devices
// mapped, ROM contents poked in).
func NewWithBus(bus *Bus) *CPU {
	return &CPU{
		Bus: bus,
		log: log.DefaultLogger(),
	}
}

// State returns the CPU's current run state.
func (cpu *CPU) State() State {
	return cpu.state
}

// Reset transitions the CPU to Running, resets every mapped device, and
// latches PC from the little-endian reset vector at 0xFFFE. It is also what
// the RST operation performs.
func (cpu *CPU) Reset() {
	cpu.Bus.Reset()

	cpu.Reg = RegisterFile{}
	cpu.SP = 0
	cpu.IR = 0
	cpu.Status = 0

	cpu.PC = cpu.Bus.Read16(ResetVectorAddr)
	cpu.state = Running

	cpu.log.Info("reset", log.Group("STATE", cpu))
}

func (cpu *CPU) String() string {
	return fmt.Sprintf("PC: %s IR: %s STATE: %s STATUS: %s\n%s",
		Word(cpu.PC), cpu.IR, cpu.state, cpu.Status, cpu.Reg)
}

// Snapshot returns a human-readable register dump for diagnostics.
func (cpu *CPU) Snapshot() string {
	return cpu.String()
}

// getRegister reads a GPR's full 16-bit value.
func (cpu *CPU) getRegister(r GPR) Word {
	return Word(cpu.Reg[r])
}

// setRegister writes a GPR's full 16-bit value.
func (cpu *CPU) setRegister(r GPR, v Word) {
	cpu.Reg[r] = Register(v)
}

// getRegisterHalf reads one byte-half of a GPR, zero-extended.
func (cpu *CPU) getRegisterHalf(r GPR, half Half) Word {
	if half == HalfHigh {
		return cpu.Reg[r].Hi()
	}

	return cpu.Reg[r].Lo()
}

// setRegisterHalf writes one byte-half of a GPR, preserving the other half.
func (cpu *CPU) setRegisterHalf(r GPR, half Half, v Word) {
	if half == HalfHigh {
		cpu.Reg[r].SetHi(v)
	} else {
		cpu.Reg[r].SetLo(v)
	}
}

// fetchWord reads the word at PC and advances PC by 2. Used both for
// instruction fetch and for consuming immediate/address operands.
func (cpu *CPU) fetchWord() Word {
	v := cpu.Bus.Read16(cpu.PC)
	cpu.PC += 2

	return v
}

// fetchByte reads the byte at PC and advances PC by 1.
func (cpu *CPU) fetchByte() Word {
	v := Word(cpu.Bus.Read8(cpu.PC))
	cpu.PC++

	return v
}
