// Package cmd implements the command-line interface for vgmirror.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vgmirror-cli/vgmirror/browser"
	"github.com/vgmirror-cli/vgmirror/color"
	"github.com/vgmirror-cli/vgmirror/pipeline"
	"github.com/vgmirror-cli/vgmirror/style"
)

func init() {
	rootCmd.AddCommand(consolesCmd)
	consolesCmd.Flags().BoolP("urls", "u", false, "Show console listing URLs")
}

// consolesCmd lists the consoles available on the archive without downloading anything.
var consolesCmd = &cobra.Command{
	Use:   "consoles",
	Short: "List the consoles available on the archive",
	Run: func(cmd *cobra.Command, args []string) {
		showURLs, _ := cmd.Flags().GetBool("urls")

		session, err := browser.NewSession()
		handleErr(err)

		// handleErr exits the process, so release the session first.
		consoles, err := pipeline.New(session).Consoles()
		session.Close()
		handleErr(err)

		for _, console := range consoles {
			cmd.Println(style.Bold(console.Name))
			if showURLs {
				cmd.Println(style.Fg(color.Blue)(console.URL))
			}
		}
	},
}
