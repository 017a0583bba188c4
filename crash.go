package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// crashScreen is restored before a panic report so the trace lands on a sane terminal
var crashScreen tcell.Screen

// handleCrash resets the terminal, prints the stack trace and exits
func handleCrash(r any) {
	if r == nil {
		return
	}

	if crashScreen != nil {
		crashScreen.Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())

	os.Exit(1)
}

// goSafe runs fn in a new goroutine with panic recovery
func goSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(r)
			}
		}()
		fn()
	}()
}
