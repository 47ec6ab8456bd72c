package mc16

// intr.go implements interrupt handling: the CPU's Off/Running/Waiting
// state machine and NMI/IRQ vector dispatch. No privilege levels or
// access-control faults -- just the three-state machine.

// serviceInterrupts runs the Waiting-state interrupt dispatch rules. It is
// only reachable while the CPU is Waiting; no defined operation enters
// that state (see cpu.go's State docs), so it is exercised directly by
// tests rather than from Process.
func (cpu *CPU) serviceInterrupts(nmi bool, irq *uint8) {
	switch {
	case nmi:
		cpu.state = Running
		cpu.Status.SetInterrupt(true)
		cpu.PC = cpu.Bus.Read16(NMIVectorAddr)

	case irq != nil:
		cpu.state = Running

		if cpu.Status.InterruptDisable() {
			// Masked: the latch stays cleared: caller must re-assert.
			return
		}

		cpu.Status.SetInterrupt(true)
		table := cpu.Bus.Read16(IRQTableBaseAddr)
		entry := table + Word(*irq)*2
		cpu.PC = cpu.Bus.Read16(entry)
	}
}
