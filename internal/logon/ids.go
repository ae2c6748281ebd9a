package logon

// Element identifiers on the SAP login screen and its follow-up dialogs.
// These are stable across most SAP GUI versions but not guaranteed;
// LoginScreenError carries a hint for the mismatch case.
const (
	idMainWindow  = "wnd[0]"
	idPopupWindow = "wnd[1]"

	idClientField   = "wnd[0]/usr/txtRSYST-MANDT"
	idUserField     = "wnd[0]/usr/txtRSYST-BNAME"
	idPasswordField = "wnd[0]/usr/pwdRSYST-BCODE"
	idLanguageField = "wnd[0]/usr/txtRSYST-LANGU"

	// Multiple logon dialog radio options: OPT1 terminates other
	// sessions, OPT2 continues without terminating, OPT3 cancels.
	idMultiLogonTerminate = "wnd[1]/usr/radMULTI_LOGON_OPT1"
	idMultiLogonContinue  = "wnd[1]/usr/radMULTI_LOGON_OPT2"
	idPopupConfirmButton  = "wnd[1]/tbar[0]/btn[0]"
)

// vkeyEnter is the virtual key code for Enter (confirm/submit).
const vkeyEnter = 0

// loginTransaction is the transaction code SAP reports while the login
// screen is still active.
const loginTransaction = "LOGIN"
