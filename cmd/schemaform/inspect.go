package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

func newInspectCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the form tree built from a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := buildTree(schemaPath)
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{"ID", "TYPE", "WIDGET", "REQUIRED", "RULES"})
			tree.Walk(func(n *schemaform.SchemaNode) bool {
				widget := ""
				if n.NodeType == schemaform.NodePrimitive {
					widget = string(n.PrimitiveType)
				}
				tw.AppendRow(table.Row{n.ID, n.NodeType.String(), widget, n.Required, summarizeRules(n.Rules)})
				return true
			})
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d node(s)\n", tree.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (json|yaml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func summarizeRules(r *schemaform.ValidationRules) string {
	if r == nil {
		return ""
	}
	var parts []string
	if r.Minimum != nil {
		op := ">="
		if r.ExclusiveMinimum {
			op = ">"
		}
		parts = append(parts, op+formatFloat(*r.Minimum))
	}
	if r.Maximum != nil {
		op := "<="
		if r.ExclusiveMaximum {
			op = "<"
		}
		parts = append(parts, op+formatFloat(*r.Maximum))
	}
	if r.MultipleOf != nil {
		parts = append(parts, "x"+formatFloat(*r.MultipleOf))
	}
	if r.MinLength != nil {
		parts = append(parts, "len>="+strconv.Itoa(*r.MinLength))
	}
	if r.MaxLength != nil {
		parts = append(parts, "len<="+strconv.Itoa(*r.MaxLength))
	}
	if r.Pattern != "" {
		parts = append(parts, "pattern")
	}
	if r.Format != "" {
		parts = append(parts, "format:"+r.Format)
	}
	if r.MinItems != nil {
		parts = append(parts, "items>="+strconv.Itoa(*r.MinItems))
	}
	if r.MaxItems != nil {
		parts = append(parts, "items<="+strconv.Itoa(*r.MaxItems))
	}
	if r.UniqueItems {
		parts = append(parts, "unique")
	}
	if len(r.Enum) > 0 {
		parts = append(parts, fmt.Sprintf("enum(%d)", len(r.Enum)))
	}
	if r.HasConst {
		parts = append(parts, "const")
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
