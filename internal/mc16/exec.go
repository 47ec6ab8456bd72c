package mc16

// exec.go drives the fetch-decode-execute cycle: fetch, decode, resolve
// operands, execute, commit.

import (
	"github.com/smoynes/mc16/internal/log"
)

// Process runs one instruction cycle, or services a pending interrupt if
// the CPU is Waiting. nmi is a pulse-style signal; irq, if non-nil, names a
// pending IRQ number.
func (cpu *CPU) Process(nmi bool, irq *uint8) {
	switch cpu.state {
	case Off:
		return
	case Waiting:
		cpu.serviceInterrupts(nmi, irq)
		return
	case Running:
		cpu.step()
	}
}

// step fetches, decodes and executes a single instruction. Interrupt
// inputs are ignored at this instruction boundary; they only take effect
// once the CPU reaches Waiting.
func (cpu *CPU) step() {
	cpu.IR = Instruction(cpu.fetchWord())

	inst := cpu.IR
	op := inst.Op()
	width := inst.Width()
	half := inst.Half()

	cpu.log.Debug("fetched", "IR", inst)

	switch op {
	case OpMOV, OpADC, OpSBC:
		cpu.executeWithOperands(op, width, half, inst.SrcMode(), inst.DstMode())
	case OpSTP:
		cpu.state = Off
		cpu.log.Info("halted (STP)", log.Group("STATE", cpu))
	case OpRST:
		cpu.Reset()
	default:
		// NOP: the instruction word has already been fetched and PC
		// advanced; no operands are resolved and no further bytes are
		// consumed.
	}
}

// executeWithOperands runs the shared resolve-source -> resolve-destination
// -> apply -> commit pipeline for MOV, ADC and SBC. Source is always fully
// resolved (and its bytes consumed) before destination -- even when the
// destination is Immediate and the write will be discarded.
func (cpu *CPU) executeWithOperands(op Opcode, width Width, half Half, srcMode, dstMode Mode) {
	srcOp := resolve(cpu, srcMode, width)
	srcVal := readOperand(cpu, srcOp, width, half)

	dstOp := resolve(cpu, dstMode, width)

	var result Word

	switch op {
	case OpMOV:
		result = evalMOV(cpu, width, srcVal)
	case OpADC:
		dstVal := readOperand(cpu, dstOp, width, half)
		result = evalADC(cpu, width, dstVal, srcVal)
	case OpSBC:
		dstVal := readOperand(cpu, dstOp, width, half)
		result = evalSBC(cpu, width, dstVal, srcVal)
	}

	writeOperand(cpu, dstOp, width, half, result)

	cpu.log.Debug("executed", "OP", op, "SRC", srcVal, "RESULT", result, "STATUS", cpu.Status)
}
