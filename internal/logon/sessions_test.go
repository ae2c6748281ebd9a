package logon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sapconnect/internal/scripting"
)

func sessionWith(system, client, user, tcode string) *fakeSession {
	sess := newFakeSession()
	sess.info = scripting.SessionInfo{SystemName: system, Client: client, User: user, Transaction: tcode}
	return sess
}

func TestListActiveSessions_FlattensAllConnections(t *testing.T) {
	engine := &fakeEngine{conns: []*fakeConnection{
		{sessions: []*fakeSession{
			sessionWith("PRD", "100", "JDOE", "SESSION_MANAGER"),
			sessionWith("PRD", "100", "JDOE", "VA01"),
		}},
		{sessions: []*fakeSession{
			sessionWith("QAS", "200", "TESTER", "SE38"),
		}},
	}}

	entries := ListActiveSessions(engine)

	assert.Equal(t, []SessionEntry{
		{Connection: 0, Session: 0, System: "PRD", Client: "100", User: "JDOE", Transaction: "SESSION_MANAGER"},
		{Connection: 0, Session: 1, System: "PRD", Client: "100", User: "JDOE", Transaction: "VA01"},
		{Connection: 1, Session: 0, System: "QAS", Client: "200", User: "TESTER", Transaction: "SE38"},
	}, entries)
}

func TestListActiveSessions_SkipsUnreadableSessions(t *testing.T) {
	broken := sessionWith("PRD", "100", "JDOE", "")
	broken.infoErr = errTest
	engine := &fakeEngine{conns: []*fakeConnection{
		{sessions: []*fakeSession{broken, sessionWith("PRD", "100", "JDOE", "SM04")}},
	}}

	entries := ListActiveSessions(engine)

	assert.Len(t, entries, 1)
	assert.Equal(t, "SM04", entries[0].Transaction)
	assert.Equal(t, 1, entries[0].Session)
}

func TestListActiveSessions_NoConnections(t *testing.T) {
	assert.Empty(t, ListActiveSessions(&fakeEngine{}))
}
