package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/medtimer/medtimer-server/internal/api/openapi"
	"github.com/medtimer/medtimer-server/medtimerservice"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var opts medtimerservice.Options
	rootCmd := &cobra.Command{
		Use:          "medtimer-server",
		Short:        "Read-only HTTP API over medications and dosage entries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Version = version
			return medtimerservice.Run(opts)
		},
	}
	rootCmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (overrides MEDTIMER_HTTP_ADDR)")
	rootCmd.Flags().BoolVar(&opts.BootstrapSchema, "bootstrap-schema", false, "Create tables and indexes if missing")

	var asYAML bool
	openapiCmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDocument(cmd.OutOrStdout(), asYAML)
		},
	}
	openapiCmd.Flags().BoolVar(&asYAML, "yaml", false, "Emit YAML instead of JSON")
	rootCmd.AddCommand(openapiCmd)

	return rootCmd
}

func writeDocument(w io.Writer, asYAML bool) error {
	doc := openapi.Document(version)
	encode := openapi.JSON
	if asYAML {
		encode = openapi.YAML
	}
	data, err := encode(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("medtimer-server exited with error")
		os.Exit(1)
	}
}
