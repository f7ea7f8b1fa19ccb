package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/lixenwraith/regionview/terminal"
)

var crashTerminal atomic.Pointer[terminal.Terminal]

// SetCrashTerminal registers the terminal finalized by HandleCrash
func SetCrashTerminal(t terminal.Terminal) {
	if t == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&t)
}

// HandleCrash restores the terminal, prints r with its stack trace and exits
// \r\n keeps output readable if the tty is still in raw mode
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if t := crashTerminal.Load(); t != nil {
		(*t).Fini()
	}
	terminal.EmergencyReset(os.Stdout)

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mREGIONVIEW CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
