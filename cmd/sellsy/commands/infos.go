package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// NewInfosCommand creates the infos command.
func NewInfosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "infos",
		Short: "Display account information",
		Long:  "Call Infos.getInfos and display the account, user and consumer information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client sellsy.Client) error {
				answer, err := client.GetInfos(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get infos: %w", err)
				}

				return renderAnswer(cmd.OutOrStdout(), outputFormat(), answer)
			})
		},
	}
}
