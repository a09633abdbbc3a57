package cmd

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the service catalog",
	Long:  `Display information about the service descriptor catalog, individual descriptors, and detection patterns.`,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.AddCommand(catalogCmd)
	infoCmd.AddCommand(descriptorCmd)
}
