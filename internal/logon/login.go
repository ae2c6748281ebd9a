package logon

import (
	"fmt"

	"sapconnect/internal/scripting"
)

// submitLogin fills the login screen according to the auth mode and sends
// the confirm key. It returns as soon as the submission is sent; callers
// must allow settle time before inspecting the screen again.
//
// The client code is always attempted, but only written when the field is
// changeable — some SAP Logon entries pre-bind the client and make the
// field read-only. Non-changeable fields are left untouched and logged.
func (c *Connector) submitLogin(sess scripting.Session, creds Credentials) error {
	if client, ok := sess.FindByID(idClientField); ok {
		if client.Changeable() {
			if err := client.SetText(creds.Client); err != nil {
				return &LoginScreenError{Err: fmt.Errorf("client field: %w", err)}
			}
			c.log.Info("client set", "client", creds.Client)
		} else {
			c.log.Info("client field not changeable, using pre-set value")
		}
	}

	if creds.Mode == AuthPassword {
		if user, ok := sess.FindByID(idUserField); ok {
			if err := user.SetText(creds.User); err != nil {
				return &LoginScreenError{Err: fmt.Errorf("username field: %w", err)}
			}
		}
		if pwd, ok := sess.FindByID(idPasswordField); ok {
			// Write-only secret field: never read back, never logged.
			if err := pwd.SetText(creds.Password); err != nil {
				return &LoginScreenError{Err: fmt.Errorf("password field: %w", err)}
			}
		}
		if lang, ok := sess.FindByID(idLanguageField); ok && lang.Changeable() {
			if err := lang.SetText(creds.Language); err != nil {
				return &LoginScreenError{Err: fmt.Errorf("language field: %w", err)}
			}
		}
		c.log.Info("credentials filled", "user", creds.User, "language", creds.Language)
	} else {
		c.log.Info("sso mode, skipping username/password fields")
	}

	wnd, ok := sess.FindByID(idMainWindow)
	if !ok {
		return &LoginScreenError{Err: fmt.Errorf("main window %s not found", idMainWindow)}
	}
	if err := wnd.SendVKey(vkeyEnter); err != nil {
		return &LoginScreenError{Err: fmt.Errorf("submit: %w", err)}
	}
	c.log.Info("login submitted")
	return nil
}
