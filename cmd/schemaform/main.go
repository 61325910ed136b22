// Command schemaform builds form trees from JSON Schema documents and
// validates data files against them from the shell, mirroring what the hub
// frontend does in process.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/cmd/schemaform/config"
	"github.com/jalvaro-lks/industry-core-hub-sub004/i18n"
	"github.com/jalvaro-lks/industry-core-hub-sub004/internal/logging"
)

// errInvalid marks a run whose schema/data checks failed, as opposed to a
// usage or I/O failure. It maps to exit code 1; everything else exits 2.
var errInvalid = errors.New("validation failed")

var (
	cfg      config.Config
	logger   *zap.Logger
	maxDepth int
	logLevel string
	language string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "schemaform",
		Short:         "Schema-driven form tooling for Digital Product Passports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-depth") {
				maxDepth = cfg.MaxDepth
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.LogLevel
			}
			if !cmd.Flags().Changed("lang") {
				language = cfg.Language
			}
			i18n.SetLanguage(language)
			logger, err = logging.Console(logLevel)
			return err
		},
	}
	root.PersistentFlags().IntVar(&maxDepth, "max-depth", config.Default().MaxDepth, "schema recursion ceiling")
	root.PersistentFlags().StringVar(&logLevel, "log-level", config.Default().LogLevel, "console log level (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&language, "lang", config.Default().Language, "validation message language (en|de)")
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newSchemasCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errInvalid) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "schemaform:", err)
		os.Exit(2)
	}
}

// loadDocument reads a schema file, picking the decoder by extension.
func loadDocument(path string) (*schemaform.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schemaform.DocumentFromYAML(data)
	default:
		return schemaform.DocumentFromJSON(data)
	}
}

// buildTree is the shared schema-to-tree step; Build reports degradations
// through the console logger as it encounters them.
func buildTree(schemaPath string) (*schemaform.Tree, error) {
	doc, err := loadDocument(schemaPath)
	if err != nil {
		return nil, err
	}
	tree, diag, err := schemaform.Build(doc, schemaform.Options{
		MaxDepth: maxDepth,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	if diag.HasWarnings() {
		logger.Info("schema degraded", zap.Int("warnings", len(diag.Warnings())))
	}
	return tree, nil
}
