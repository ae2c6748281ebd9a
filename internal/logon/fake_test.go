package logon

import (
	"errors"
	"fmt"

	"sapconnect/internal/scripting"
)

var errTest = errors.New("element gone stale")

// The fakes below stand in for the COM-backed scripting tree. They record
// every interaction so tests can assert which fields were written, which
// buttons pressed, and in what order.

type fakeElement struct {
	id         string
	text       string
	changeable bool

	writes   []string
	presses  int
	selects  int
	vkeys    []int
	setErr   error
	pressErr error
	selErr   error
	vkeyErr  error

	onPress  func()
	onSelect func()
	onVKey   func(code int)

	journal *[]string
}

func (e *fakeElement) record(event string) {
	if e.journal != nil {
		*e.journal = append(*e.journal, event)
	}
}

func (e *fakeElement) Text() string     { return e.text }
func (e *fakeElement) Changeable() bool { return e.changeable }

func (e *fakeElement) SetText(value string) error {
	if e.setErr != nil {
		return e.setErr
	}
	e.writes = append(e.writes, value)
	e.text = value
	e.record("write:" + e.id)
	return nil
}

func (e *fakeElement) Press() error {
	if e.pressErr != nil {
		return e.pressErr
	}
	e.presses++
	e.record("press:" + e.id)
	if e.onPress != nil {
		e.onPress()
	}
	return nil
}

func (e *fakeElement) Select() error {
	if e.selErr != nil {
		return e.selErr
	}
	e.selects++
	e.record("select:" + e.id)
	if e.onSelect != nil {
		e.onSelect()
	}
	return nil
}

func (e *fakeElement) SendVKey(code int) error {
	if e.vkeyErr != nil {
		return e.vkeyErr
	}
	e.vkeys = append(e.vkeys, code)
	e.record(fmt.Sprintf("vkey:%s:%d", e.id, code))
	if e.onVKey != nil {
		e.onVKey(code)
	}
	return nil
}

type fakeSession struct {
	elements map[string]*fakeElement
	info     scripting.SessionInfo
	infoErr  error
	status   scripting.StatusMessage
	statusOK bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{elements: map[string]*fakeElement{}}
}

// add registers an element under its path ID.
func (s *fakeSession) add(id string, el *fakeElement) *fakeElement {
	el.id = id
	s.elements[id] = el
	return el
}

func (s *fakeSession) remove(id string) { delete(s.elements, id) }

func (s *fakeSession) FindByID(id string) (scripting.Element, bool) {
	el, ok := s.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (s *fakeSession) Info() (scripting.SessionInfo, error) {
	if s.infoErr != nil {
		return scripting.SessionInfo{}, s.infoErr
	}
	return s.info, nil
}

func (s *fakeSession) Statusbar() (scripting.StatusMessage, bool) {
	return s.status, s.statusOK
}

type fakeConnection struct {
	sessions []*fakeSession
	sessErr  error
}

func (c *fakeConnection) SessionCount() int { return len(c.sessions) }

func (c *fakeConnection) Session(index int) (scripting.Session, error) {
	if c.sessErr != nil {
		return nil, c.sessErr
	}
	if index < 0 || index >= len(c.sessions) {
		return nil, fmt.Errorf("no session at index %d", index)
	}
	return c.sessions[index], nil
}

type fakeEngine struct {
	conns   []*fakeConnection
	next    *fakeConnection
	openErr error
	opened  []string
}

func (e *fakeEngine) ConnectionCount() int { return len(e.conns) }

func (e *fakeEngine) Connection(index int) (scripting.Connection, error) {
	if index < 0 || index >= len(e.conns) {
		return nil, fmt.Errorf("no connection at index %d", index)
	}
	return e.conns[index], nil
}

func (e *fakeEngine) OpenConnection(description string, synchronous bool) (scripting.Connection, error) {
	e.opened = append(e.opened, description)
	if e.openErr != nil {
		return nil, e.openErr
	}
	conn := e.next
	if conn == nil {
		conn = &fakeConnection{}
	}
	e.conns = append(e.conns, conn)
	return conn, nil
}
