package mc16

// modes.go is the addressing engine: the sixteen source/destination
// location forms, resolved by a single mode-indexed table rather than a
// hand-written switch duplicated per operation and per src/dst position.
//
// All address arithmetic wraps modulo 0x10000 for free, since Word is a
// uint16.

// operandKind distinguishes the three places a resolved operand can live.
type operandKind uint8

const (
	operandImmediate operandKind = iota
	operandRegister
	operandMemory
)

// operand is a resolved source or destination location. Resolving an
// operand consumes any extra instruction bytes it requires (immediates,
// absolute addresses) but does not itself read or write the operand's
// value -- that's readOperand/writeOperand, below.
type operand struct {
	kind operandKind
	reg  GPR  // operandRegister
	addr Word // operandMemory
	imm  Word // operandImmediate: the literal value already fetched
}

// modeResolver computes an operand's location for a given width, reading
// from PC (and advancing it) for any bytes the mode requires.
type modeResolver func(cpu *CPU, width Width) operand

// modeTable is indexed by the four-bit mode code and shared by both the
// source and destination fields -- every mode is valid in either position.
var modeTable [16]modeResolver

func init() {
	modeTable[ModeImmediate] = resolveImmediate

	for m := ModeA; m <= ModeY; m++ {
		modeTable[m] = registerMode(RegA + GPR(m-ModeA))
	}

	modeTable[ModeAbs] = resolveAbs
	modeTable[ModeAbsX] = resolveAbsX
	modeTable[ModeAbsInd] = resolveAbsInd
	modeTable[ModeAbsIndX] = resolveAbsIndX
	modeTable[ModeAbsXInd] = resolveAbsXInd
	modeTable[ModeYX] = resolveYX
	modeTable[ModeYInd] = resolveYInd
	modeTable[ModeYIndX] = resolveYIndX
	modeTable[ModeYXInd] = resolveYXInd
}

// resolve computes the location named by mode, consuming instruction bytes
// as that mode requires.
func resolve(cpu *CPU, mode Mode, width Width) operand {
	return modeTable[mode&0x0f](cpu, width)
}

func resolveImmediate(cpu *CPU, width Width) operand {
	var v Word
	if width == Width8 {
		v = cpu.fetchByte()
	} else {
		v = cpu.fetchWord()
	}

	return operand{kind: operandImmediate, imm: v}
}

func registerMode(reg GPR) modeResolver {
	return func(cpu *CPU, width Width) operand {
		return operand{kind: operandRegister, reg: reg}
	}
}

// resolveAbs: [imm16]
func resolveAbs(cpu *CPU, width Width) operand {
	return operand{kind: operandMemory, addr: cpu.fetchWord()}
}

// resolveAbsX: [imm16 + X]
func resolveAbsX(cpu *CPU, width Width) operand {
	addr := cpu.fetchWord() + cpu.getRegister(RegX)

	return operand{kind: operandMemory, addr: addr}
}

// resolveAbsInd: [[imm16]]
func resolveAbsInd(cpu *CPU, width Width) operand {
	ptr := cpu.fetchWord()
	addr := cpu.Bus.Read16(ptr)

	return operand{kind: operandMemory, addr: addr}
}

// resolveAbsIndX: [[imm16] + X]
func resolveAbsIndX(cpu *CPU, width Width) operand {
	ptr := cpu.fetchWord()
	addr := cpu.Bus.Read16(ptr) + cpu.getRegister(RegX)

	return operand{kind: operandMemory, addr: addr}
}

// resolveAbsXInd: [[imm16 + X]]
func resolveAbsXInd(cpu *CPU, width Width) operand {
	ptr := cpu.fetchWord() + cpu.getRegister(RegX)
	addr := cpu.Bus.Read16(ptr)

	return operand{kind: operandMemory, addr: addr}
}

// resolveYX: [Y + X]
func resolveYX(cpu *CPU, width Width) operand {
	addr := cpu.getRegister(RegY) + cpu.getRegister(RegX)

	return operand{kind: operandMemory, addr: addr}
}

// resolveYInd: [[Y]]
func resolveYInd(cpu *CPU, width Width) operand {
	addr := cpu.Bus.Read16(cpu.getRegister(RegY))

	return operand{kind: operandMemory, addr: addr}
}

// resolveYIndX: [[Y] + X]
func resolveYIndX(cpu *CPU, width Width) operand {
	addr := cpu.Bus.Read16(cpu.getRegister(RegY)) + cpu.getRegister(RegX)

	return operand{kind: operandMemory, addr: addr}
}

// resolveYXInd: [[Y + X]]
func resolveYXInd(cpu *CPU, width Width) operand {
	ptr := cpu.getRegister(RegY) + cpu.getRegister(RegX)
	addr := cpu.Bus.Read16(ptr)

	return operand{kind: operandMemory, addr: addr}
}

// readOperand loads the current value at a resolved operand. Byte-mode
// register operands read the half selected by half; memory and immediate
// operands ignore half.
func readOperand(cpu *CPU, op operand, width Width, half Half) Word {
	switch op.kind {
	case operandImmediate:
		return op.imm
	case operandRegister:
		if width == Width8 {
			return cpu.getRegisterHalf(op.reg, half)
		}

		return cpu.getRegister(op.reg)
	default: // operandMemory
		if width == Width8 {
			return Word(cpu.Bus.Read8(op.addr))
		}

		return cpu.Bus.Read16(op.addr)
	}
}

// writeOperand commits a value to a resolved operand. Writing to an
// immediate operand -- always the case when Immediate is used as a
// destination -- is a no-op; the operand's bytes were already consumed by
// resolve.
func writeOperand(cpu *CPU, op operand, width Width, half Half, v Word) {
	switch op.kind {
	case operandImmediate:
		return
	case operandRegister:
		if width == Width8 {
			cpu.setRegisterHalf(op.reg, half, v)
		} else {
			cpu.setRegister(op.reg, v)
		}
	default: // operandMemory
		if width == Width8 {
			cpu.Bus.Write8(op.addr, byte(v))
		} else {
			cpu.Bus.Write16(op.addr, v)
		}
	}
}
