package logon

import (
	"strings"

	"sapconnect/internal/scripting"
)

// DetectScreen determines what the session is currently displaying.
// Pure inspection: it mutates nothing and never fails — an absent element
// or unreadable property simply folds into the next check.
//
// Checks in priority order:
//  1. Client-code field present → LOGIN. The only unambiguous signal.
//  2. Transaction code non-empty and not the login marker → MENU.
//  3. Main window title non-empty → MENU.
//  4. Otherwise UNKNOWN.
//
// Checks 2 and 3 are fallbacks for SSO entries that authenticate without
// ever showing the login screen. The title check is a weak heuristic (a
// blank-titled error dialog would slip through as MENU) but no stronger
// general rule exists across all SAP screens.
func DetectScreen(sess scripting.Session) ScreenState {
	if _, ok := sess.FindByID(idClientField); ok {
		return ScreenLogin
	}

	if info, err := sess.Info(); err == nil {
		tcode := strings.TrimSpace(info.Transaction)
		if tcode != "" && tcode != loginTransaction {
			return ScreenMenu
		}
	}

	if wnd, ok := sess.FindByID(idMainWindow); ok {
		if strings.TrimSpace(wnd.Text()) != "" {
			return ScreenMenu
		}
	}

	return ScreenUnknown
}
