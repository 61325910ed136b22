package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

func newFieldsCmd() *cobra.Command {
	var schemaPath, section string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the flattened form-field list",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := buildTree(schemaPath)
			if err != nil {
				return err
			}
			fields := schemaform.Flatten(tree)
			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{"ID", "LABEL", "SECTION", "TYPE", "REQUIRED"})
			shown := 0
			for _, f := range fields {
				if section != "" && f.Section != section {
					continue
				}
				tw.AppendRow(table.Row{f.ID, f.Label, f.Section, string(f.Type), f.Required})
				shown++
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d field(s)\n", shown)
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (json|yaml)")
	cmd.Flags().StringVar(&section, "section", "", "only fields of this section")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
