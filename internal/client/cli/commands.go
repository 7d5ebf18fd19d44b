package cli

// Command identifies one of the fixed set of REPL actions. Keeping the set
// closed as a typed enum means the dispatcher can switch exhaustively and
// the compiler catches a handler that was forgotten.
type Command int

const (
	CmdUnknown Command = iota
	CmdHelp
	CmdRegister
	CmdLogin
	CmdLogout
	CmdHome
	CmdMenu
	CmdAdd
	CmdCart
	CmdQty
	CmdRemove
	CmdDeliver
	CmdCheckout
	CmdOrders
	CmdStatus
	CmdExit
)

var commandNames = map[string]Command{
	"help":     CmdHelp,
	"register": CmdRegister,
	"login":    CmdLogin,
	"logout":   CmdLogout,
	"home":     CmdHome,
	"menu":     CmdMenu,
	"m":        CmdMenu,
	"add":      CmdAdd,
	"cart":     CmdCart,
	"c":        CmdCart,
	"qty":      CmdQty,
	"remove":   CmdRemove,
	"rm":       CmdRemove,
	"deliver":  CmdDeliver,
	"delivery": CmdDeliver,
	"checkout": CmdCheckout,
	"orders":   CmdOrders,
	"status":   CmdStatus,
	"exit":     CmdExit,
	"quit":     CmdExit,
}

// ParseCommand maps a typed token to its Command. Unrecognized input yields
// CmdUnknown so the REPL can report it without guessing.
func ParseCommand(token string) Command {
	if cmd, ok := commandNames[token]; ok {
		return cmd
	}
	return CmdUnknown
}
