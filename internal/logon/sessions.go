package logon

import "sapconnect/internal/scripting"

// SessionEntry is one active session in the running client.
type SessionEntry struct {
	Connection  int    `yaml:"connection"  json:"connection"`
	Session     int    `yaml:"session"     json:"session"`
	System      string `yaml:"system"      json:"system"`
	Client      string `yaml:"client"      json:"client"`
	User        string `yaml:"user"        json:"user"`
	Transaction string `yaml:"transaction,omitempty" json:"transaction,omitempty"`
}

// ListActiveSessions flattens all open connections and their sessions into
// entries. Best-effort: sessions whose metadata cannot be read are skipped.
func ListActiveSessions(engine scripting.Engine) []SessionEntry {
	var entries []SessionEntry
	for i := 0; i < engine.ConnectionCount(); i++ {
		conn, err := engine.Connection(i)
		if err != nil {
			continue
		}
		for j := 0; j < conn.SessionCount(); j++ {
			sess, err := conn.Session(j)
			if err != nil {
				continue
			}
			info, err := sess.Info()
			if err != nil {
				continue
			}
			entries = append(entries, SessionEntry{
				Connection:  i,
				Session:     j,
				System:      info.SystemName,
				Client:      info.Client,
				User:        info.User,
				Transaction: info.Transaction,
			})
		}
	}
	return entries
}
