package logon

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"sapconnect/internal/scripting"
)

// Timings are the poll intervals, deadlines and settle delays of one
// connection attempt. They are configuration, not behavior: tests and
// config overrides shrink them, the semantics stay the same.
type Timings struct {
	// ReadyInterval/ReadyTimeout bound the wait for the new session's
	// main window to become queryable after OpenConnection.
	ReadyInterval time.Duration
	ReadyTimeout  time.Duration
	// LoginSettle is the fixed wait after submitting the login screen
	// before the result is inspected.
	LoginSettle time.Duration
	// PopupSettle separates popup drain iterations; PopupAttempts bounds
	// them.
	PopupSettle   time.Duration
	PopupAttempts int
}

// DefaultTimings returns the standard production timings.
func DefaultTimings() Timings {
	return Timings{
		ReadyInterval: 500 * time.Millisecond,
		ReadyTimeout:  30 * time.Second,
		LoginSettle:   2 * time.Second,
		PopupSettle:   500 * time.Millisecond,
		PopupAttempts: 5,
	}
}

// Options configures a Connector.
type Options struct {
	// Timings defaults to DefaultTimings() when zero.
	Timings Timings
	// TerminateOthers answers the multiple-logon dialog with the
	// destructive option instead of the default non-destructive one.
	TerminateOthers bool
	// PromptUser and PromptPassword supply missing password-mode
	// credentials interactively. Both must be set when password mode is
	// used with empty user or password.
	PromptUser     func(system, client string) (string, error)
	PromptPassword func(user, system string) (string, error)
}

// Connector drives one connection attempt from "SAP Logon running" to a
// verified, usable session. It holds no state across attempts.
type Connector struct {
	launcher        *Launcher
	log             *log.Logger
	timings         Timings
	terminateOthers bool
	promptUser      func(system, client string) (string, error)
	promptPassword  func(user, system string) (string, error)
	sleep           func(time.Duration)
}

// NewConnector builds a Connector on the given launcher.
func NewConnector(launcher *Launcher, logger *log.Logger, opts Options) *Connector {
	timings := opts.Timings
	if timings == (Timings{}) {
		timings = DefaultTimings()
	}
	return &Connector{
		launcher:        launcher,
		log:             logger,
		timings:         timings,
		terminateOthers: opts.TerminateOthers,
		promptUser:      opts.PromptUser,
		promptPassword:  opts.PromptPassword,
		sleep:           time.Sleep,
	}
}

// Connect opens a new connection to the named SAP Logon entry, drives the
// login screen to completion, dismisses post-login popups and verifies the
// outcome. On success it returns a handle bound to the established
// session; on any failure no partial session state is returned.
func (c *Connector) Connect(system string, creds Credentials) (*SessionHandle, error) {
	// Missing password-mode credentials are collected before any GUI
	// interaction so a prompt never races a half-open window.
	if creds.Mode == AuthPassword {
		var err error
		if creds, err = c.completeCredentials(system, creds); err != nil {
			return nil, err
		}
	}

	engine, err := c.launcher.EnsureRunning()
	if err != nil {
		return nil, err
	}
	c.log.Info("opening connection", "system", system, "mode", creds.Mode.String())

	conn, err := engine.OpenConnection(system, true)
	if err != nil {
		return nil, &UnavailableError{
			Reason: fmt.Sprintf("cannot open connection to %q (does the entry exist in SAP Logon? the name is case-sensitive)", system),
			Err:    err,
		}
	}

	sess, err := c.waitForSession(conn)
	if err != nil {
		return nil, err
	}

	state := DetectScreen(sess)
	c.log.Info("screen detected", "state", state.String())

	switch state {
	case ScreenLogin:
		if err := c.submitLogin(sess, creds); err != nil {
			return nil, err
		}
		c.sleep(c.timings.LoginSettle)
		if after := DetectScreen(sess); after == ScreenLogin {
			c.log.Warn("still on login screen after submit")
		}
	case ScreenMenu:
		c.log.Info("authenticated automatically, login screen skipped")
	default:
		c.log.Warn("unexpected screen state, attempting to continue", "state", state.String())
	}

	c.drainPopups(sess)

	if err := c.verifyLogon(sess); err != nil {
		return nil, err
	}

	// The connection opened by this attempt is the most recently added
	// entry in the client's connection list.
	handle, err := AttachSession(engine, engine.ConnectionCount()-1, 0)
	if err != nil {
		return nil, err
	}
	if info, err := handle.Info(); err == nil {
		c.log.Info("connected",
			"system", info.SystemName,
			"client", info.Client,
			"user", info.User,
			"transaction", info.Transaction)
	}
	return handle, nil
}

// completeCredentials prompts for missing username/password in password
// mode. The password prompt never echoes and the value is never logged.
func (c *Connector) completeCredentials(system string, creds Credentials) (Credentials, error) {
	if strings.TrimSpace(creds.User) == "" {
		if c.promptUser == nil {
			return creds, fmt.Errorf("username required for password logon to %q", system)
		}
		user, err := c.promptUser(system, creds.Client)
		if err != nil {
			return creds, fmt.Errorf("username prompt: %w", err)
		}
		creds.User = strings.TrimSpace(user)
	}
	if creds.Password == "" {
		if c.promptPassword == nil {
			return creds, fmt.Errorf("password required for password logon to %q", system)
		}
		password, err := c.promptPassword(creds.User, system)
		if err != nil {
			return creds, fmt.Errorf("password prompt: %w", err)
		}
		creds.Password = password
	}
	return creds, nil
}

// waitForSession is the readiness barrier after OpenConnection: the new
// window may still be constructing, and queries against it fail until the
// main window exposes a readable title.
func (c *Connector) waitForSession(conn scripting.Connection) (scripting.Session, error) {
	var sess scripting.Session
	var title string
	ok := pollUntil(c.timings.ReadyInterval, c.timings.ReadyTimeout, func() bool {
		s, err := conn.Session(0)
		if err != nil {
			return false
		}
		wnd, found := s.FindByID(idMainWindow)
		if !found {
			return false
		}
		sess = s
		title = wnd.Text()
		return true
	})
	if !ok {
		return nil, &TimeoutError{Op: "SAP window readiness after OpenConnection", Elapsed: c.timings.ReadyTimeout.String()}
	}
	c.log.Info("session opened", "title", title)
	return sess, nil
}

// SessionHandle is the externally usable wrapper around a verified
// connection/session pair.
type SessionHandle struct {
	ConnectionIndex int
	SessionIndex    int

	engine scripting.Engine
	sess   scripting.Session
}

// AttachSession binds a handle to an already-established connection and
// session at the given indices. This is the named constructor for
// attaching to a negotiated session; it deliberately bypasses any
// first-connection auto-derivation.
func AttachSession(engine scripting.Engine, connIndex, sessIndex int) (*SessionHandle, error) {
	conn, err := engine.Connection(connIndex)
	if err != nil {
		return nil, fmt.Errorf("attach connection %d: %w", connIndex, err)
	}
	sess, err := conn.Session(sessIndex)
	if err != nil {
		return nil, fmt.Errorf("attach session %d/%d: %w", connIndex, sessIndex, err)
	}
	return &SessionHandle{
		ConnectionIndex: connIndex,
		SessionIndex:    sessIndex,
		engine:          engine,
		sess:            sess,
	}, nil
}

// Session exposes the underlying scripting session.
func (h *SessionHandle) Session() scripting.Session { return h.sess }

// Info reads the session's metadata.
func (h *SessionHandle) Info() (scripting.SessionInfo, error) { return h.sess.Info() }
