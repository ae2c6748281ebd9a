package cmd

import (
	"github.com/spf13/cobra"

	"sapconnect/internal/logon"
	"sapconnect/internal/output"
	"sapconnect/internal/scripting"
)

// ListResult is the output of the list command.
type ListResult struct {
	Count    int                  `yaml:"count"    json:"count"`
	Sessions []logon.SessionEntry `yaml:"sessions" json:"sessions"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active SAP sessions",
	Long: `List the sessions currently open in the running SAP Logon client,
with connection/session indices, system, client, user and transaction.
Does not start SAP Logon; an empty list is reported when it is not running.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	engine, err := scripting.Attach()
	if err != nil {
		logger.Info("SAP Logon not running", "err", err)
		return output.Print(ListResult{Count: 0, Sessions: []logon.SessionEntry{}})
	}

	sessions := logon.ListActiveSessions(engine)
	if sessions == nil {
		sessions = []logon.SessionEntry{}
	}
	return output.Print(ListResult{Count: len(sessions), Sessions: sessions})
}
