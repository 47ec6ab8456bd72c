package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/smoynes/mc16/internal/mc16"
)

func newTestConsole(t *testing.T, out *bytes.Buffer) *Console {
	t.Helper()

	bus := mc16.NewBus()
	if _, err := bus.Map(0, mc16.NumBlocks, mc16.NewRAM(mc16.NumBlocks*mc16.BlockSize)); err != nil {
		t.Fatalf("map RAM: %v", err)
	}

	cpu := mc16.NewWithBus(bus)
	cpu.Reset()

	return &Console{cpu: cpu, out: out}
}

func TestDispatch_StepAdvancesPC(t *testing.T) {
	var out bytes.Buffer
	c := newTestConsole(t, &out)

	pc := c.cpu.PC

	if quit := c.dispatch(CmdStep); quit {
		t.Fatal("CmdStep reported quit")
	}

	if c.cpu.PC == pc {
		t.Error("PC did not advance after CmdStep")
	}
}

func TestDispatch_DumpWritesSnapshot(t *testing.T) {
	var out bytes.Buffer
	c := newTestConsole(t, &out)

	c.dispatch(CmdDump)

	if !strings.Contains(out.String(), "PC:") {
		t.Errorf("dump output = %q, want it to contain a PC field", out.String())
	}
}

func TestDispatch_TraceToggles(t *testing.T) {
	var out bytes.Buffer
	c := newTestConsole(t, &out)

	c.dispatch(CmdTrace)
	if !c.trace {
		t.Error("trace not enabled after first CmdTrace")
	}

	c.dispatch(CmdTrace)
	if c.trace {
		t.Error("trace not disabled after second CmdTrace")
	}
}

func TestDispatch_QuitReportsTrue(t *testing.T) {
	var out bytes.Buffer
	c := newTestConsole(t, &out)

	if quit := c.dispatch(CmdQuit); !quit {
		t.Error("CmdQuit did not report quit")
	}
}
