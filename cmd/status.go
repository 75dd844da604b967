// Package cmd implements the command-line interface for vgmirror.
package cmd

import (
	"encoding/json"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vgmirror-cli/vgmirror/color"
	"github.com/vgmirror-cli/vgmirror/status"
	"github.com/vgmirror-cli/vgmirror/style"
	"github.com/vgmirror-cli/vgmirror/util"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("failed", "f", false, "Show only games whose last attempt failed")
	statusCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// statusCmd inspects the per-game download status ledger.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded download outcomes from previous runs",
	Run: func(cmd *cobra.Command, args []string) {
		failedOnly := lo.Must(cmd.Flags().GetBool("failed"))
		asJson := lo.Must(cmd.Flags().GetBool("json"))

		var records []*status.Record
		if failedOnly {
			failed, err := status.Failed()
			handleErr(err)
			records = failed
		} else {
			all, err := status.Get()
			handleErr(err)
			records = lo.Values(all)
		}

		sort.Slice(records, func(i, j int) bool {
			if records[i].Console != records[j].Console {
				return records[i].Console < records[j].Console
			}
			return records[i].Game < records[j].Game
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		for _, record := range records {
			render := style.Fg(color.Green)
			if record.Outcome != status.Done {
				render = style.Fg(color.Red)
			}
			cmd.Println(render(record.String()))
			if record.Comment != "" {
				cmd.Println(style.Faint("  " + record.Comment))
			}
		}

		cmd.Println(style.Faint(util.Quantify(len(records), "record", "records")))
	},
}
