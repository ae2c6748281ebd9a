package logon

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"sapconnect/internal/scripting"
)

// DefaultLogonCandidates are the standard saplogon.exe install locations,
// searched in order; the first existing path wins.
var DefaultLogonCandidates = []string{
	`C:\Program Files (x86)\SAP\FrontEnd\SAPgui\saplogon.exe`,
	`C:\Program Files\SAP\FrontEnd\SAPgui\saplogon.exe`,
	`C:\Program Files (x86)\SAP\SAPLogon\saplogon.exe`,
}

// Launcher ensures a running, scriptable SAP Logon process. Attach and
// Start are injectable so the bootstrap behavior is testable without a
// desktop; zero values fall back to the real implementations.
type Launcher struct {
	// Attach connects to an already-running client's scripting engine.
	Attach func() (scripting.Engine, error)
	// Start launches the executable as a detached process.
	Start func(path string) error
	// Candidates are the executable locations searched when attaching fails.
	Candidates []string
	// Interval and Timeout bound the post-launch attach polling.
	Interval time.Duration
	Timeout  time.Duration

	Log *log.Logger
}

// NewLauncher returns a Launcher with the real attach/start implementations
// and the standard candidate paths.
func NewLauncher(logger *log.Logger) *Launcher {
	return &Launcher{
		Attach:     scripting.Attach,
		Start:      startDetached,
		Candidates: DefaultLogonCandidates,
		Interval:   time.Second,
		Timeout:    30 * time.Second,
		Log:        logger,
	}
}

// EnsureRunning returns the scripting engine of a running SAP Logon,
// starting the process first if necessary. Each poll attempt is a fresh
// attach; no partial state carries over between attempts.
func (l *Launcher) EnsureRunning() (scripting.Engine, error) {
	if engine, err := l.Attach(); err == nil {
		l.Log.Info("SAP Logon already running", "connections", engine.ConnectionCount())
		return engine, nil
	}
	l.Log.Info("SAP Logon not detected, attempting to start it")

	exePath := ""
	for _, candidate := range l.Candidates {
		if _, err := os.Stat(candidate); err == nil {
			exePath = candidate
			break
		}
	}
	if exePath == "" {
		return nil, &UnavailableError{
			Reason: fmt.Sprintf(
				"SAP Logon is not running and saplogon.exe was not found in the standard locations:\n  %s\nstart SAP Logon manually and retry",
				strings.Join(l.Candidates, "\n  ")),
		}
	}

	l.Log.Info("launching SAP Logon", "path", exePath)
	if err := l.Start(exePath); err != nil {
		return nil, &UnavailableError{Reason: "failed to launch SAP Logon", Err: err}
	}

	var engine scripting.Engine
	ok := pollUntil(l.Interval, l.Timeout, func() bool {
		e, err := l.Attach()
		if err != nil {
			return false
		}
		engine = e
		return true
	})
	if !ok {
		return nil, &UnavailableError{
			Reason: fmt.Sprintf(
				"SAP Logon was launched but did not become scriptable within %s (check that SAP GUI scripting is enabled)",
				l.Timeout),
		}
	}
	l.Log.Info("SAP Logon started")
	return engine, nil
}

// startDetached launches the executable without keeping a handle on it;
// SAP Logon outlives the automation run.
func startDetached(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
