package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscore/internal/models"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME",
	Short: "Show which player a name resolves to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, closeProvider, err := buildPipeline(cmd.Context())
		defer closeProvider()
		if err != nil {
			return err
		}

		player, err := p.resolver.Resolve(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			outcome := models.ClassifyError(err)
			fmt.Fprintln(cmd.OutOrStdout(), err)
			return &exitError{code: exitCodeFor(outcome)}
		}

		status := "inactive"
		if player.IsActive {
			status = "active"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", player.ID, player.FullName, status)
		return nil
	},
}
