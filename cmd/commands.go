package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/uiprobe/internal/player"
	"github.com/xkilldash9x/uiprobe/internal/toolkit/tktest"
)

// commandsCmd prints the supported command surface, one name per line. This
// mirrors what a driver gets from list_commands, without starting a server.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the supported driver commands.",
	Run: func(cmd *cobra.Command, args []string) {
		p := player.New(tktest.NewApp(), cfg.Player, nil)
		for _, name := range p.CommandNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
