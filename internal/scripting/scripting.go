// Package scripting defines the boundary to the SAP GUI scripting engine:
// an opaque, queryable tree of named elements on a running SAP Logon process.
//
// All types here are interfaces so the logon state machine can be exercised
// against an in-memory tree in tests. The real COM-backed implementation
// lives in the windows subpackage and registers itself via AttachFunc.
package scripting

import (
	"fmt"
	"runtime"
)

// Engine is the scripting entry point of a running SAP Logon process
// (GuiApplication in SAP terms). One Engine per automation run.
type Engine interface {
	// ConnectionCount returns the number of open connections.
	ConnectionCount() int

	// Connection returns the connection at the given index.
	Connection(index int) (Connection, error)

	// OpenConnection opens a new connection to the named SAP Logon entry.
	// The description must match the entry name exactly (case-sensitive).
	OpenConnection(description string, synchronous bool) (Connection, error)
}

// Connection is a single remote-system connection owning zero or more sessions.
type Connection interface {
	SessionCount() int
	Session(index int) (Session, error)
}

// Session is one window/interaction context within a connection.
type Session interface {
	// FindByID resolves a path-like element identifier (e.g.
	// "wnd[0]/usr/txtRSYST-MANDT") to a live element. A missing or stale
	// path reports ok=false; it never fails any other way.
	FindByID(id string) (Element, bool)

	// Info returns session metadata (system, client, user, transaction).
	Info() (SessionInfo, error)

	// Statusbar reads the main window's status bar. ok=false when the
	// status bar cannot be read (e.g. the screen has no status content yet).
	Statusbar() (StatusMessage, bool)
}

// Element is a single node in the session's element tree. Any operation can
// fail for a stale path; callers decide whether that is fatal.
type Element interface {
	Text() string
	SetText(value string) error
	Changeable() bool
	Press() error
	Select() error
	SendVKey(code int) error
}

// SessionInfo is the metadata SAP exposes per session.
type SessionInfo struct {
	SystemName     string `yaml:"system"            json:"system"`
	Client         string `yaml:"client"            json:"client"`
	User           string `yaml:"user"              json:"user"`
	Transaction    string `yaml:"transaction"       json:"transaction"`
	ResponseTimeMS int    `yaml:"response_time_ms,omitempty" json:"response_time_ms,omitempty"`
}

// Status severities reported by the SAP status bar.
const (
	SeveritySuccess = "S"
	SeverityWarning = "W"
	SeverityError   = "E"
	SeverityAbort   = "A"
)

// StatusMessage is one status bar reading.
type StatusMessage struct {
	Severity string // "S", "W", "E", "A", or "" for no message
	Text     string
}

// ErrUnsupported is returned on platforms without the SAP GUI COM interface.
var ErrUnsupported = fmt.Errorf("sapconnect requires the SAP GUI scripting engine and is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// AttachFunc is set by platform-specific packages via init().
// See internal/scripting/windows for the COM registration.
var AttachFunc func() (Engine, error)

// Attach connects to the scripting engine of an already-running SAP Logon.
func Attach() (Engine, error) {
	if AttachFunc == nil {
		return nil, ErrUnsupported
	}
	return AttachFunc()
}
