package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/internal/host"
)

const (
	keyStep   = 0.05
	keyBuffer = 16
)

const keyHelp = "keys: q/a time  w/s mod  e/d decay  r/f dry  x quit"

// keyboard turns raw stdin bytes into a channel of key presses.
type keyboard struct {
	fd       int
	oldState *term.State
	keys     chan byte
	done     chan struct{}
	stopOnce sync.Once
}

// startKeyboard puts stdin into raw mode. It returns nil, nil when stdin is
// not a terminal.
func startKeyboard() (*keyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("keyboard: raw mode: %w", err)
	}

	k := &keyboard{
		fd:       fd,
		oldState: oldState,
		keys:     make(chan byte, keyBuffer),
		done:     make(chan struct{}),
	}
	go readKeys(os.Stdin, k.keys, k.done)
	return k, nil
}

// readKeys forwards bytes from r to keys until r fails or done is closed,
// then closes keys. Presses that find keys full are dropped.
func readKeys(r io.Reader, keys chan<- byte, done <-chan struct{}) {
	defer close(keys)

	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n != 1 {
			continue
		}
		select {
		case <-done:
			return
		case keys <- buf[0]:
		default:
		}
	}
}

// Keys returns the key channel. A nil keyboard yields a nil channel, which
// never fires in a select.
func (k *keyboard) Keys() <-chan byte {
	if k == nil {
		return nil
	}
	return k.keys
}

// Stop restores the terminal and lets the reader exit on its next byte.
// It is safe to call more than once.
func (k *keyboard) Stop() {
	if k == nil {
		return
	}
	k.stopOnce.Do(func() {
		close(k.done)
		if k.oldState != nil {
			_ = term.Restore(k.fd, k.oldState)
		}
	})
}

// applyKey nudges the panel for one key press and reports whether the key
// asks to quit. Ctrl-C arrives as a byte in raw mode.
func applyKey(c *host.Controls, key byte) (quit bool) {
	nudge := func(v *float64, d float64) { *v = core.Clamp01(*v + d) }

	switch key {
	case 'q':
		nudge(&c.TimeKnob, keyStep)
	case 'a':
		nudge(&c.TimeKnob, -keyStep)
	case 'w':
		nudge(&c.ModKnob, keyStep)
	case 's':
		nudge(&c.ModKnob, -keyStep)
	case 'e':
		nudge(&c.DecayKnob, keyStep)
	case 'd':
		nudge(&c.DecayKnob, -keyStep)
	case 'r':
		nudge(&c.Sliders[0], keyStep)
	case 'f':
		nudge(&c.Sliders[0], -keyStep)
	case 'x', 3, 4:
		return true
	}
	return false
}

// status is the one-line panel readout. The leading carriage return keeps
// it on one line in raw mode.
func status(c *host.Controls) string {
	return fmt.Sprintf("\rtime %.2f  mod %.2f  decay %.2f  dry %.2f ",
		c.TimeKnob, c.ModKnob, c.DecayKnob, c.Sliders[0])
}
