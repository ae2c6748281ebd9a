package logon

// AuthMode selects how the login screen is driven.
type AuthMode int

const (
	// AuthSSO relies on the desktop identity (SNC/Kerberos); the login
	// screen, if shown at all, only needs the client code.
	AuthSSO AuthMode = iota
	// AuthPassword fills username, password and language explicitly.
	AuthPassword
)

func (m AuthMode) String() string {
	if m == AuthPassword {
		return "password"
	}
	return "sso"
}

// Credentials carries everything the login driver writes to the screen.
// User and Password are ignored in SSO mode. The password is write-only:
// it is never read back, logged, or persisted.
type Credentials struct {
	Client   string
	User     string
	Password string
	Language string
	Mode     AuthMode
}

// ScreenState classifies what a freshly opened session is displaying.
type ScreenState int

const (
	// ScreenUnknown is anything that is neither the login screen nor a
	// recognizable post-login screen (system message, maintenance, ...).
	ScreenUnknown ScreenState = iota
	// ScreenLogin is the standard SAP login screen.
	ScreenLogin
	// ScreenMenu is SAP Easy Access or any other post-login screen.
	ScreenMenu
)

func (s ScreenState) String() string {
	switch s {
	case ScreenLogin:
		return "LOGIN"
	case ScreenMenu:
		return "MENU"
	default:
		return "UNKNOWN"
	}
}

// PopupKind classifies a secondary modal window.
type PopupKind int

const (
	// PopupNone means no modal is present.
	PopupNone PopupKind = iota
	// PopupMultipleLogon is the dialog shown when the user already has
	// active sessions elsewhere.
	PopupMultipleLogon
	// PopupInfoDialog covers copyright and system notice dialogs that
	// only need a confirm.
	PopupInfoDialog
)

func (k PopupKind) String() string {
	switch k {
	case PopupMultipleLogon:
		return "MULTIPLE_LOGON"
	case PopupInfoDialog:
		return "INFO_DIALOG"
	default:
		return "NONE"
	}
}
