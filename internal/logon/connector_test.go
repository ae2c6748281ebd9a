package logon

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapconnect/internal/scripting"
)

// connectorFor builds a connector whose launcher attaches straight to the
// given fake engine.
func connectorFor(engine *fakeEngine, opts Options) *Connector {
	logger := log.New(io.Discard)
	launcher := &Launcher{
		Attach:   func() (scripting.Engine, error) { return engine, nil },
		Start:    func(string) error { return nil },
		Interval: time.Millisecond,
		Timeout:  20 * time.Millisecond,
		Log:      logger,
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = testTimings()
	}
	return NewConnector(launcher, logger, opts)
}

// menuSession builds a session already past authentication.
func menuSession() *fakeSession {
	sess := newFakeSession()
	sess.add(idMainWindow, &fakeElement{text: "SAP Easy Access"})
	sess.info = scripting.SessionInfo{
		SystemName:  "PRD",
		Client:      "100",
		User:        "JDOE",
		Transaction: "SESSION_MANAGER",
	}
	sess.statusOK = true
	return sess
}

func TestConnect_SSOAutoAuthenticated(t *testing.T) {
	sess := menuSession()
	sess.status = scripting.StatusMessage{Severity: scripting.SeveritySuccess, Text: "Logged on"}
	engine := &fakeEngine{next: &fakeConnection{sessions: []*fakeSession{sess}}}
	c := connectorFor(engine, Options{})

	handle, err := c.Connect("PRD SSO", Credentials{Client: "100", Mode: AuthSSO})

	require.NoError(t, err)
	assert.Equal(t, []string{"PRD SSO"}, engine.opened)
	assert.Equal(t, 0, handle.ConnectionIndex)
	assert.Equal(t, 0, handle.SessionIndex)
	for id, el := range sess.elements {
		assert.Empty(t, el.writes, "no field should be written on %s", id)
	}
	info, err := handle.Info()
	require.NoError(t, err)
	assert.Equal(t, "PRD", info.SystemName)
}

func TestConnect_PasswordLogin(t *testing.T) {
	sess := loginScreen()
	sess.statusOK = true
	// Submitting transitions the screen to the menu.
	sess.elements[idMainWindow].onVKey = func(int) {
		sess.remove(idClientField)
		sess.remove(idUserField)
		sess.remove(idPasswordField)
		sess.remove(idLanguageField)
		sess.elements[idMainWindow].text = "SAP Easy Access"
		sess.info = scripting.SessionInfo{SystemName: "DEV", Client: "100", User: "JDOE", Transaction: "SESSION_MANAGER"}
	}
	engine := &fakeEngine{next: &fakeConnection{sessions: []*fakeSession{sess}}}

	var logBuf bytes.Buffer
	c := connectorFor(engine, Options{})
	c.log = log.New(&logBuf)

	creds := Credentials{Client: "100", User: "JDOE", Password: "s3cret", Language: "EN", Mode: AuthPassword}
	handle, err := c.Connect("DEV", creds)

	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, DetectScreen(sess))
	assert.Equal(t, 0, handle.ConnectionIndex)
	assert.NotContains(t, logBuf.String(), "s3cret", "password must never be logged")
}

func TestConnect_RejectedCredentials(t *testing.T) {
	sess := loginScreen()
	sess.elements[idMainWindow].onVKey = func(int) {
		sess.statusOK = true
		sess.status = scripting.StatusMessage{
			Severity: scripting.SeverityError,
			Text:     "Name or password is incorrect",
		}
	}
	engine := &fakeEngine{next: &fakeConnection{sessions: []*fakeSession{sess}}}
	c := connectorFor(engine, Options{})

	creds := Credentials{Client: "100", User: "JDOE", Password: "wrong", Mode: AuthPassword}
	_, err := c.Connect("DEV", creds)

	var failed *LoginFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, scripting.SeverityError, failed.Severity)
	assert.Equal(t, "Name or password is incorrect", failed.Message)
}

func TestConnect_PopupChainResolvedBeforeVerification(t *testing.T) {
	sess := menuSession()
	// First a multiple-logon dialog, then an info dialog, then clear.
	sess.add(idPopupWindow, &fakeElement{text: "License Information for Multiple Logons"})
	sess.add(idMultiLogonTerminate, &fakeElement{})
	keep := sess.add(idMultiLogonContinue, &fakeElement{})
	confirm := sess.add(idPopupConfirmButton, &fakeElement{})
	confirm.onPress = func() {
		sess.remove(idMultiLogonTerminate)
		sess.remove(idMultiLogonContinue)
		sess.remove(idPopupConfirmButton)
		sess.elements[idPopupWindow].text = "Copyright © SAP SE"
	}
	wnd := sess.elements[idMainWindow]
	wnd.onVKey = func(int) { sess.remove(idPopupWindow) }

	engine := &fakeEngine{next: &fakeConnection{sessions: []*fakeSession{sess}}}
	c := connectorFor(engine, Options{})

	handle, err := c.Connect("PRD", Credentials{Client: "100", Mode: AuthSSO})

	require.NoError(t, err)
	assert.NotNil(t, handle)
	assert.Equal(t, 1, keep.selects, "multiple logon resolved first")
	assert.Equal(t, []int{vkeyEnter}, wnd.vkeys, "info dialog dismissed second")
}

func TestConnect_MissingEntryIsUnavailableWithHint(t *testing.T) {
	engine := &fakeEngine{openErr: errTest}
	c := connectorFor(engine, Options{})

	_, err := c.Connect("TYPO-SYS", Credentials{Mode: AuthSSO})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "case-sensitive")
	assert.Contains(t, err.Error(), "TYPO-SYS")
}

func TestConnect_WindowNeverReadyTimesOut(t *testing.T) {
	// A connection whose sessions never materialize.
	engine := &fakeEngine{next: &fakeConnection{}}
	c := connectorFor(engine, Options{})

	_, err := c.Connect("PRD", Credentials{Mode: AuthSSO})

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
}

func TestConnect_PromptsBeforeAnyFieldWrite(t *testing.T) {
	var journal []string
	sess := loginScreen()
	sess.statusOK = true
	for _, el := range sess.elements {
		el.journal = &journal
	}
	sess.elements[idMainWindow].onVKey = func(int) {
		sess.info = scripting.SessionInfo{Transaction: "SESSION_MANAGER"}
		sess.remove(idClientField)
	}
	engine := &fakeEngine{next: &fakeConnection{sessions: []*fakeSession{sess}}}

	c := connectorFor(engine, Options{
		PromptUser: func(system, client string) (string, error) {
			journal = append(journal, "prompt:user")
			return "JDOE", nil
		},
		PromptPassword: func(user, system string) (string, error) {
			journal = append(journal, "prompt:password")
			return "prompted-pw", nil
		},
	})

	_, err := c.Connect("DEV", Credentials{Client: "100", Mode: AuthPassword})
	require.NoError(t, err)

	require.NotEmpty(t, journal)
	assert.Equal(t, []string{"prompt:user", "prompt:password"}, journal[:2],
		"both prompts must run before any screen interaction")
	assert.Equal(t, []string{"prompted-pw"}, sess.elements[idPasswordField].writes)
}

func TestConnect_PasswordModeWithoutPromptersFails(t *testing.T) {
	engine := &fakeEngine{}
	c := connectorFor(engine, Options{})

	_, err := c.Connect("DEV", Credentials{Mode: AuthPassword})

	require.Error(t, err)
	assert.Empty(t, engine.opened, "no connection attempt without complete credentials")
}

func TestConnect_NewConnectionIsLastInList(t *testing.T) {
	existing := &fakeConnection{sessions: []*fakeSession{menuSession()}}
	sess := menuSession()
	engine := &fakeEngine{
		conns: []*fakeConnection{existing},
		next:  &fakeConnection{sessions: []*fakeSession{sess}},
	}
	c := connectorFor(engine, Options{})

	handle, err := c.Connect("PRD", Credentials{Mode: AuthSSO})

	require.NoError(t, err)
	assert.Equal(t, 1, handle.ConnectionIndex, "handle must bind the newly added connection")
}

func TestAttachSession_BindsGivenIndices(t *testing.T) {
	first := menuSession()
	second := menuSession()
	second.info.SystemName = "QAS"
	engine := &fakeEngine{conns: []*fakeConnection{
		{sessions: []*fakeSession{first}},
		{sessions: []*fakeSession{menuSession(), second}},
	}}

	handle, err := AttachSession(engine, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, handle.ConnectionIndex)
	assert.Equal(t, 1, handle.SessionIndex)
	info, err := handle.Info()
	require.NoError(t, err)
	assert.Equal(t, "QAS", info.SystemName, "attach must not re-derive connection 0")
}

func TestAttachSession_BadIndex(t *testing.T) {
	engine := &fakeEngine{}
	_, err := AttachSession(engine, 0, 0)
	require.Error(t, err)
}
