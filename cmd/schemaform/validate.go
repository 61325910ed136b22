package main

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

func newValidateCmd() *cobra.Command {
	var schemaPath, dataPath string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a data file against a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := buildTree(schemaPath)
			if err != nil {
				return err
			}
			data, err := loadData(dataPath)
			if err != nil {
				return err
			}
			res := schemaform.Validate(tree, data)
			if res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			printErrorTable(cmd, res.Errors, verbose)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d error(s) in %d field(s)\n",
				len(res.Errors), len(res.FieldsWithErrors))
			return errInvalid
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (json|yaml)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "data file (json)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "include offending values")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func loadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid data file %s: %w", path, err)
	}
	return v, nil
}

func printErrorTable(cmd *cobra.Command, errs schemaform.ValidationErrors, verbose bool) {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	if verbose {
		tw.AppendHeader(table.Row{"FIELD", "RULE", "SECTION", "MESSAGE", "VALUE"})
	} else {
		tw.AppendHeader(table.Row{"FIELD", "RULE", "SECTION", "MESSAGE"})
	}
	for _, e := range errs {
		if verbose {
			tw.AppendRow(table.Row{e.FieldID, e.Rule, e.Section, e.Message, fmt.Sprintf("%v", e.Value)})
			continue
		}
		tw.AppendRow(table.Row{e.FieldID, e.Rule, e.Section, e.Message})
	}
	fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
}
