package logon

import "sapconnect/internal/scripting"

// classifyPopup inspects the session for a secondary modal window.
// Re-evaluated on every drain iteration since dialogs can chain.
func classifyPopup(sess scripting.Session) PopupKind {
	if _, ok := sess.FindByID(idPopupWindow); !ok {
		return PopupNone
	}
	if _, ok := sess.FindByID(idMultiLogonTerminate); ok {
		return PopupMultipleLogon
	}
	return PopupInfoDialog
}

// drainPopups dismisses the modal dialogs that can appear after a
// successful authentication, looping until none remains or the attempt
// bound is reached. It never fails: a resolution that goes wrong falls
// back to a generic confirm key so the loop can always make progress.
func (c *Connector) drainPopups(sess scripting.Session) {
	c.sleep(c.timings.PopupSettle)

	for attempt := 0; attempt < c.timings.PopupAttempts; attempt++ {
		kind := classifyPopup(sess)
		if kind == PopupNone {
			return
		}

		if popup, ok := sess.FindByID(idPopupWindow); ok {
			c.log.Info("popup detected", "kind", kind.String(), "title", popup.Text())
		}

		switch kind {
		case PopupMultipleLogon:
			c.resolveMultipleLogon(sess)
		default:
			c.log.Info("dismissing info/copyright popup")
			c.confirmMainWindow(sess)
		}

		c.sleep(c.timings.PopupSettle)
	}
}

// resolveMultipleLogon answers the multiple-logon dialog. The default
// choice continues this logon without terminating the user's other active
// sessions; TerminateOthers flips to the destructive option.
func (c *Connector) resolveMultipleLogon(sess scripting.Session) {
	optionID := idMultiLogonContinue
	if c.terminateOthers {
		optionID = idMultiLogonTerminate
	}
	c.log.Info("multiple logon dialog", "terminate_others", c.terminateOthers)

	failed := false
	if opt, ok := sess.FindByID(optionID); ok {
		if err := opt.Select(); err != nil {
			c.log.Warn("multiple logon option select failed", "err", err)
			failed = true
		}
	}
	if !failed {
		if btn, ok := sess.FindByID(idPopupConfirmButton); ok {
			if err := btn.Press(); err != nil {
				c.log.Warn("multiple logon confirm failed", "err", err)
				failed = true
			}
		} else if popup, ok := sess.FindByID(idPopupWindow); ok {
			if err := popup.SendVKey(vkeyEnter); err != nil {
				c.log.Warn("multiple logon confirm key failed", "err", err)
				failed = true
			}
		}
	}

	if failed {
		// Fall back to a generic confirm so the drain loop keeps moving.
		c.confirmMainWindow(sess)
		return
	}
	c.log.Info("multiple logon handled")
}

// confirmMainWindow sends the generic confirm key to the main window,
// swallowing any failure.
func (c *Connector) confirmMainWindow(sess scripting.Session) {
	wnd, ok := sess.FindByID(idMainWindow)
	if !ok {
		return
	}
	if err := wnd.SendVKey(vkeyEnter); err != nil {
		c.log.Warn("confirm key failed", "err", err)
	}
}
