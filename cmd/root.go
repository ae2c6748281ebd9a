package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sapconnect/internal/logging"
	"sapconnect/internal/output"
	"sapconnect/internal/version"
)

// logger is built by the root PersistentPreRunE and shared by all commands.
var logger *log.Logger

var rootCmd = &cobra.Command{
	Use:   "sapconnect",
	Short: "Open and authenticate SAP GUI sessions from the command line",
	Long: `sapconnect drives the SAP GUI scripting engine of a running SAP Logon
client: it opens a connection to a named system entry, completes the login
screen (SSO or password), dismisses post-login dialogs and verifies that
authentication actually succeeded.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		logger = logging.New(verbose)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}
