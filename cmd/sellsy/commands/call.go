package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   "call METHOD",
		Short: "Call an API method",
		Long: `Call any Sellsy API method, such as Client.getList, and print its answer.

Parameters come from --params-json or --params-file, then --param pairs are
applied on top of them.`,
		Example: `  sellsy call Infos.getInfos
  sellsy call Client.getOne --param clientid=42
  sellsy call Client.getList --params-file search.yaml --param pagination.nbperpage=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.build()
			if err != nil {
				return err
			}

			return withClient(cmd, func(client sellsy.Client) error {
				answer, err := client.Call(cmd.Context(), args[0], params)
				if err != nil {
					return fmt.Errorf("call to %s failed: %w", args[0], err)
				}

				return renderAnswer(cmd.OutOrStdout(), outputFormat(), answer)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

// NewCollectionCommand creates the collection command.
func NewCollectionCommand() *cobra.Command {
	var flags paramFlags

	cmd := &cobra.Command{
		Use:   "collection RESOURCE METHOD",
		Short: "Call a method of a resource",
		Long: `Call METHOD on RESOURCE, for example "collection Client getList" calls
Client.getList. Run "sellsy resources" for the list of resources.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := sellsy.ParseResource(args[0])
			if err != nil {
				return err
			}

			params, err := flags.build()
			if err != nil {
				return err
			}

			return withClient(cmd, func(client sellsy.Client) error {
				collection := client.Collection(resource)

				answer, err := collection.Call(cmd.Context(), args[1], params)
				if err != nil {
					return fmt.Errorf("call to %s failed: %w", collection.MethodName(args[1]), err)
				}

				return renderAnswer(cmd.OutOrStdout(), outputFormat(), answer)
			})
		},
	}

	flags.register(cmd)

	return cmd
}
