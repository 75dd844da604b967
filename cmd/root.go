// Package cmd implements the command-line interface for vgmirror.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/browser"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/icon"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/log"
	"github.com/vgmirror-cli/vgmirror/pipeline"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("downloads", "d", "", "Root directory for the mirrored archive tree")
	lo.Must0(viper.BindPFlag(key.DownloadsPath, rootCmd.PersistentFlags().Lookup("downloads")))

	rootCmd.PersistentFlags().StringSliceP("console", "c", []string{}, "Mirror only the named consoles")
	lo.Must0(viper.BindPFlag(key.DownloadsConsoles, rootCmd.PersistentFlags().Lookup("console")))

	rootCmd.PersistentFlags().IntP("delay", "D", 2, "Delay between page requests, in seconds")
	lo.Must0(viper.BindPFlag(key.ScraperDelay, rootCmd.PersistentFlags().Lookup("delay")))

	rootCmd.PersistentFlags().Bool("keep-archive", false, "Keep downloaded archives after extraction")
	lo.Must0(viper.BindPFlag(key.DownloadsKeepArchive, rootCmd.PersistentFlags().Lookup("keep-archive")))

	rootCmd.PersistentFlags().StringP("browser", "b", "", "Path to the browser executable")
	lo.Must0(viper.BindPFlag(key.BrowserPath, rootCmd.PersistentFlags().Lookup("browser")))

	rootCmd.PersistentFlags().Bool("headless", true, "Run the browser without a visible window")
	lo.Must0(viper.BindPFlag(key.BrowserHeadless, rootCmd.PersistentFlags().Lookup("headless")))

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))
}

// rootCmd runs the full archive traversal: every console, every game,
// covers and music archives, resumable via local filesystem state.
var rootCmd = &cobra.Command{
	Use:   constant.Vgmirror,
	Short: "Mirror a video game music archive into a local directory tree",
	Long: `Mirror a video game music archive into a local directory tree.

Browses the archive with a headless browser, enumerates consoles and games,
picks the best soundtrack format, and downloads audio archives plus cover
images into downloads/<Console>/<Game>/. Re-running resumes: anything already
on disk is skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		session, err := browser.NewSession()
		handleErr(err)

		// handleErr exits the process, so release the session first.
		err = pipeline.New(session).Run(cmd.Context())
		session.Close()
		handleErr(err)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
