// Package cmd implements the command-line interface for vgmirror.
package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/open"
)

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolP("site", "s", false, "Open the music archive website instead of the downloads directory")
}

// openCmd launches the downloads directory (or the archive site) with the system's default handler.
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the downloads directory in the system file manager",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("site")) {
			handleErr(open.Start(constant.SiteBase + constant.MusicPath))
			return
		}

		handleErr(open.Run(viper.GetString(key.DownloadsPath)))
	},
}
