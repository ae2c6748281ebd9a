package logon

import "fmt"

// UnavailableError reports that the SAP Logon process or the target system
// entry cannot be reached. Not retryable without operator intervention
// (install path, entry name, scripting permission).
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TimeoutError reports that a bounded poll loop exceeded its deadline.
// Retryable by re-running the whole connection attempt.
type TimeoutError struct {
	Op      string
	Elapsed string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not complete within %s", e.Op, e.Elapsed)
}

// LoginScreenError reports that a field or button expected during login
// interaction could not be written or invoked. Field identifiers may
// differ across SAP GUI versions and screen layouts.
type LoginScreenError struct {
	Err error
}

func (e *LoginScreenError) Error() string {
	return fmt.Sprintf("login screen interaction failed: %v (field IDs may differ by SAP version / screen layout)", e.Err)
}

func (e *LoginScreenError) Unwrap() error { return e.Err }

// LoginFailedError reports that the remote system rejected the
// authentication (wrong credentials, locked account, system down). The
// message is the remote system's status bar text, verbatim.
type LoginFailedError struct {
	Severity string
	Message  string
}

func (e *LoginFailedError) Error() string {
	return fmt.Sprintf("login failed [%s]: %s", e.Severity, e.Message)
}
