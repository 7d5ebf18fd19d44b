package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Home(ctx context.Context) error { f.calls = append(f.calls, "home"); return nil }
func (f *fakeExec) Menu(ctx context.Context) error { f.calls = append(f.calls, "menu"); return nil }
func (f *fakeExec) Add(ctx context.Context) error  { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Cart(ctx context.Context) error { f.calls = append(f.calls, "cart"); return nil }
func (f *fakeExec) Qty(ctx context.Context) error  { f.calls = append(f.calls, "qty"); return nil }
func (f *fakeExec) Remove(ctx context.Context) error {
	f.calls = append(f.calls, "remove")
	return nil
}
func (f *fakeExec) Deliver(ctx context.Context) error {
	f.calls = append(f.calls, "deliver")
	return nil
}
func (f *fakeExec) Checkout(ctx context.Context) error {
	f.calls = append(f.calls, "checkout")
	return nil
}
func (f *fakeExec) ShowOrders(ctx context.Context) error {
	f.calls = append(f.calls, "orders")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"menu",
		"add",
		"cart",
		"checkout",
		"orders",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "menu", "add", "cart", "checkout", "orders"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_AuthGatedCommandsRefusedWhileSignedOut(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("menu\ncart\ncheckout\nstatus\nquit\n")
	exec := &fakeExec{loggedIn: false}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 1 || exec.calls[0] != "status" {
		t.Fatalf("only status should run while signed out, got: %v", exec.calls)
	}
}

func TestRunREPL_Aliases(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("m\nc\nrm\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	want := []string{"menu", "cart", "remove"}
	if len(exec.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], c)
		}
	}
}
