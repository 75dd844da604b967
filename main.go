// Package main is the entry point for the vgmirror application.
package main

import (
	"github.com/samber/lo"
	"github.com/vgmirror-cli/vgmirror/cmd"
	"github.com/vgmirror-cli/vgmirror/config"
	"github.com/vgmirror-cli/vgmirror/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
