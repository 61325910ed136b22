package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jalvaro-lks/industry-core-hub-sub004/catalog"
)

func newSchemasCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "Load a schema directory into a catalog and list it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New(catalog.Options{})
			if err != nil {
				return err
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if e.IsDir() || !isSchemaFile(e.Name()) {
					continue
				}
				path := filepath.Join(dir, e.Name())
				rec, err := loadRecord(path)
				if err != nil {
					logger.Warn("skipping unreadable schema file",
						zap.String("file", path), zap.Error(err))
					continue
				}
				if err := cat.Put(rec); err != nil {
					return err
				}
			}
			recs, err := cat.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{"KEY", "URN", "VERSION", "ASPECT"})
			for _, r := range recs {
				tw.AppendRow(table.Row{r.Key, r.URN, r.Version, r.Aspect})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d schema(s)\n", len(recs))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding schema files")
	return cmd
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// loadRecord decodes one schema file into a catalog record, lifting the
// root URN annotation when present.
func loadRecord(path string) (*catalog.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec := &catalog.Record{Key: key, Document: doc, Raw: raw}
	if root, ok := doc.Interface().(map[string]any); ok {
		if urn, ok := root["x-samm-aspect-model-urn"].(string); ok {
			rec.URN = urn
			rec.Aspect, rec.Version = splitURN(urn)
		}
	}
	return rec, nil
}

// splitURN extracts aspect name and version from a SAMM URN like
// "urn:samm:io.catenax.battery_pass:6.0.0#BatteryPass".
func splitURN(urn string) (aspect, version string) {
	if i := strings.IndexByte(urn, '#'); i >= 0 {
		aspect = urn[i+1:]
		urn = urn[:i]
	}
	if i := strings.LastIndexByte(urn, ':'); i >= 0 {
		version = urn[i+1:]
	}
	return aspect, version
}
