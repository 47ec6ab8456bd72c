// Package console provides an interactive raw-terminal stepper for the
// mc16 harness.
package console

// console.go implements an interactive single-step debugger front-end:
// raw terminal mode, one key read per loop iteration, dispatched to
// step/dump/trace/quit.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/smoynes/mc16/internal/log"
	"github.com/smoynes/mc16/internal/mc16"
)

// ErrNoTTY is returned by New if standard input is not a terminal.
var ErrNoTTY = errors.New("console: not a TTY")

// Command is a single key dispatched by Run's read loop.
type Command byte

// Key commands recognized by Run.
const (
	CmdStep  Command = ' '
	CmdDump  Command = 'd'
	CmdQuit  Command = 'q'
	CmdTrace Command = 't'
)

// Console drives a CPU interactively from a raw terminal: space steps one
// cycle, d dumps a register/status snapshot, t toggles per-cycle tracing,
// q quits and restores terminal state.
type Console struct {
	cpu   *mc16.CPU
	in    *os.File
	out   io.Writer
	fd    int
	saved *term.State
	trace bool
	log   *log.Logger
}

// New wraps cpu with an interactive console reading from in and writing to
// out. in must be a terminal; New returns ErrNoTTY otherwise. Callers must
// call Restore to return the terminal to its original state.
func New(cpu *mc16.CPU, in *os.File, out io.Writer) (*Console, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTTY, err)
	}

	if err := setReadParams(fd, 1, 0); err != nil {
		_ = term.Restore(fd, saved)
		return nil, fmt.Errorf("%w: %s", ErrNoTTY, err)
	}

	return &Console{
		cpu:   cpu,
		in:    in,
		out:   out,
		fd:    fd,
		saved: saved,
		log:   log.DefaultLogger(),
	}, nil
}

// Restore returns the terminal to the state it was in before New.
func (c *Console) Restore() {
	_ = term.Restore(c.fd, c.saved)
}

// setReadParams configures the terminal to return a read as soon as vmin
// bytes are available, waiting at most vtime deciseconds. term.MakeRaw
// alone leaves VMIN/VTIME at whatever the shell set, which can make a
// single-byte command read block on a full line.
func setReadParams(fd int, vmin, vtime byte) error {
	termIO, err := unix.IoctlGetTermios(fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	return unix.IoctlSetTermios(fd, setTermiosIoctl, termIO)
}

// Run reads one key at a time from the console and dispatches it until q
// is pressed or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	buf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := c.in.Read(buf)
		if err != nil {
			return fmt.Errorf("console: read: %w", err)
		}

		if n == 0 {
			continue
		}

		if c.dispatch(Command(buf[0])) {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the console should quit.
func (c *Console) dispatch(cmd Command) (quit bool) {
	switch cmd {
	case CmdStep:
		c.cpu.Process(false, nil)

		if c.trace {
			fmt.Fprintln(c.out, c.cpu.Snapshot())
		}
	case CmdDump:
		fmt.Fprintln(c.out, c.cpu.Snapshot())
	case CmdTrace:
		c.trace = !c.trace
		fmt.Fprintf(c.out, "trace: %v\r\n", c.trace)
	case CmdQuit:
		return true
	}

	return false
}
