package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// NewResourcesCommand creates the resources command.
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List API resources",
		Long:  "List the resources accepted by the collection command, in API order",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources := sellsy.Resources()

			names := make([]string, 0, len(resources))
			for _, resource := range resources {
				names = append(names, resource.String())
			}

			return render(cmd.OutOrStdout(), outputFormat(), names, func(w io.Writer) error {
				table := tablewriter.NewWriter(w)
				table.Header("#", "Resource", "Example Method")

				for i, name := range names {
					_ = table.Append([]string{strconv.Itoa(i + 1), name, name + ".getList"})
				}

				err := table.Render()
				if err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}
