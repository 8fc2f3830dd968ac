package live

// CommandType names an admin command sent over the event channel.
type CommandType string

const (
	CmdLogin             CommandType = "admin:login"
	CmdStartAuction      CommandType = "admin:startAuction"
	CmdPauseAuction      CommandType = "admin:pauseAuction"
	CmdResumeAuction     CommandType = "admin:resumeAuction"
	CmdResetAuction      CommandType = "admin:resetAuction"
	CmdStartAutoAuction  CommandType = "admin:startAutoAuction"
	CmdStopAutoAuction   CommandType = "admin:stopAutoAuction"
	CmdUndoSale          CommandType = "admin:undoSale"
	CmdRemoveFromAuction CommandType = "admin:removeFromAuction"
)

// Command is the outbound envelope. The ID lets the server de-duplicate a
// command that arrives twice across a reconnect.
type Command struct {
	ID    string      `json:"id"`
	Event CommandType `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type loginPayload struct {
	Password string `json:"password"`
}

type playerPayload struct {
	PlayerID string `json:"playerId"`
}

// CommandResult reports what happened to an outbound command. Commands are
// fire-and-forget; any acknowledgment arrives later via the event stream, so
// this only covers the local emission.
type CommandResult int

const (
	// CommandOK means the command was written to the transport.
	CommandOK CommandResult = iota
	// CommandTimedOut means the write deadline expired before the command
	// left the socket.
	CommandTimedOut
	// CommandRejected means the command was never sent: no transport, a
	// write failure, or the admin declined the confirmation prompt.
	CommandRejected
)

func (r CommandResult) String() string {
	switch r {
	case CommandOK:
		return "ok"
	case CommandTimedOut:
		return "timed out"
	case CommandRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Confirmer gates destructive commands behind a synchronous user prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Notifier surfaces server messages that require the admin's attention, such
// as unsold-round summaries and auth errors.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
