package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sapconnect/internal/config"
	"sapconnect/internal/logon"
	"sapconnect/internal/output"
)

// ConnectResult is the output of a successful connect.
type ConnectResult struct {
	OK             bool   `yaml:"ok"                json:"ok"`
	System         string `yaml:"system"            json:"system"`
	Client         string `yaml:"client"            json:"client"`
	User           string `yaml:"user"              json:"user"`
	Transaction    string `yaml:"transaction,omitempty" json:"transaction,omitempty"`
	Connection     int    `yaml:"connection"        json:"connection"`
	Session        int    `yaml:"session"           json:"session"`
	ResponseTimeMS int    `yaml:"response_time_ms,omitempty" json:"response_time_ms,omitempty"`
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open a new SAP connection and log in",
	Long: `Open a new connection to a SAP Logon entry and complete the login.

Starts SAP Logon if it is not already running. With SSO (the default) no
credentials are needed; with --no-sso the username and password are taken
from flags, config, or interactive prompts (the password is never echoed).

Examples:
  sapconnect connect --system MYSYS --client 100
  sapconnect connect --system MYSYS --client 100 --no-sso --user JDOE
  sapconnect connect --system MYSYS --no-sso --user JDOE --password-file ~/.sappw`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().String("system", "", "SAP Logon entry description (exact, case-sensitive)")
	connectCmd.Flags().String("client", "", "SAP client number, e.g. 100")
	connectCmd.Flags().String("user", "", "SAP username (prompted if missing; ignored with SSO)")
	connectCmd.Flags().String("password-file", "", "File containing the SAP password (prompted if missing; ignored with SSO)")
	connectCmd.Flags().String("language", "", "Logon language code, e.g. EN")
	connectCmd.Flags().Bool("no-sso", false, "Use username + password instead of SSO")
	connectCmd.Flags().Bool("terminate-others", false, "Answer the multiple-logon dialog by terminating other sessions")
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	system := stringFlagOr(cmd, "system", cfg.System)
	if system == "" {
		return fmt.Errorf("no target system: pass --system or set it in the config file")
	}

	creds := logon.Credentials{
		Client:   stringFlagOr(cmd, "client", cfg.Client),
		User:     stringFlagOr(cmd, "user", cfg.User),
		Language: stringFlagOr(cmd, "language", cfg.Language),
		Mode:     logon.AuthSSO,
	}
	if noSSO, _ := cmd.Flags().GetBool("no-sso"); noSSO || !cfg.SSO {
		creds.Mode = logon.AuthPassword
	}
	if path, _ := cmd.Flags().GetString("password-file"); path != "" {
		creds.Password, err = readPasswordFile(path)
		if err != nil {
			return err
		}
	}

	terminateOthers, _ := cmd.Flags().GetBool("terminate-others")

	launcher := logon.NewLauncher(logger)
	launcher.Candidates = cfg.LogonCandidates
	launcher.Timeout = cfg.StartupTimeout

	timings := logon.DefaultTimings()
	timings.ReadyTimeout = cfg.ReadyTimeout

	connector := logon.NewConnector(launcher, logger, logon.Options{
		Timings:         timings,
		TerminateOthers: terminateOthers || cfg.TerminateOthers,
		PromptUser:      promptUser,
		PromptPassword:  promptPassword,
	})

	handle, err := connector.Connect(system, creds)
	if err != nil {
		return err
	}

	result := ConnectResult{
		OK:         true,
		Connection: handle.ConnectionIndex,
		Session:    handle.SessionIndex,
	}
	if info, err := handle.Info(); err == nil {
		result.System = info.SystemName
		result.Client = info.Client
		result.User = info.User
		result.Transaction = info.Transaction
		result.ResponseTimeMS = info.ResponseTimeMS
	}
	return output.Print(result)
}

// stringFlagOr returns the flag value when set, the fallback otherwise.
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}
