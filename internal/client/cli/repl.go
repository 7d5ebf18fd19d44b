package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Menu(ctx context.Context) error
	Add(ctx context.Context) error
	Cart(ctx context.Context) error
	Qty(ctx context.Context) error
	Remove(ctx context.Context) error
	Deliver(ctx context.Context) error
	Checkout(ctx context.Context) error
	ShowOrders(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the storefront client.
//
// It reads a line from the provided scanner, parses the first token into a
// Command, and dispatches to methods on 'a'. Commands that require a signed
// in user are refused with a notice while signed out. The loop exits on
// scanner EOF or on CmdExit.
//
// Any errors returned by command handlers are ignored here; handlers show
// their own notices. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("boba> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := ParseCommand(parts[0])

		if !a.isLoggedIn() && requiresAuth(cmd) {
			printlnFn("Please sign in first: register or login.")
			continue
		}

		switch cmd {
		case CmdHelp:
			if a.isLoggedIn() {
				printlnFn("Available commands: home, (m)enu, add, (c)art, qty, remove, deliver, checkout, orders, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case CmdRegister:
			_ = a.Register(ctx)

		case CmdLogin:
			_ = a.Login(ctx)

		case CmdLogout:
			_ = a.Logout(ctx)

		case CmdHome:
			_ = a.Home(ctx)

		case CmdMenu:
			_ = a.Menu(ctx)

		case CmdAdd:
			_ = a.Add(ctx)

		case CmdCart:
			_ = a.Cart(ctx)

		case CmdQty:
			_ = a.Qty(ctx)

		case CmdRemove:
			_ = a.Remove(ctx)

		case CmdDeliver:
			_ = a.Deliver(ctx)

		case CmdCheckout:
			_ = a.Checkout(ctx)

		case CmdOrders:
			_ = a.ShowOrders(ctx)

		case CmdStatus:
			_ = a.Status(ctx)

		case CmdExit:
			printlnFn("Bye!")
			return

		case CmdUnknown:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

// requiresAuth reports whether a command only makes sense for a signed-in
// user. Everything behind the auth wall except registration, login and the
// store status check.
func requiresAuth(cmd Command) bool {
	switch cmd {
	case CmdHelp, CmdRegister, CmdLogin, CmdStatus, CmdExit, CmdUnknown:
		return false
	}
	return true
}
