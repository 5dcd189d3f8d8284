// Package cli implements the shoptext command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersion is called from main to inject build-time version info.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "shoptext",
	Short: "ShopText: Shopify order notifications over SMS",
	Long: `ShopText receives Shopify order webhooks and sends order confirmation
and shipment SMS messages to customers through the Termii gateway.

Start the server:
  shoptext serve

Or with an explicit config file:
  shoptext serve --config /etc/shoptext/shoptext.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
