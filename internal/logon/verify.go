package logon

import "sapconnect/internal/scripting"

// verifyLogon checks whether the login actually succeeded by reading the
// status bar. Severity E (error) or A (abort) marks the whole attempt as
// failed and surfaces the remote system's message verbatim. An unreadable
// status bar is treated as success, since some post-login screens have no
// status content yet. Warnings and success messages are only logged.
func (c *Connector) verifyLogon(sess scripting.Session) error {
	status, ok := sess.Statusbar()
	if !ok {
		return nil
	}

	switch status.Severity {
	case scripting.SeverityError, scripting.SeverityAbort:
		return &LoginFailedError{Severity: status.Severity, Message: status.Text}
	case scripting.SeverityWarning:
		c.log.Warn("login warning", "message", status.Text)
	case scripting.SeveritySuccess:
		if status.Text != "" {
			c.log.Info("login status", "message", status.Text)
		}
	}
	return nil
}
