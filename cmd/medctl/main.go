package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/medtimer/medtimer-server/client"
)

type rootOptions struct {
	api     string
	timeout time.Duration
	retries int
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "medctl",
		Short:         "CLI client for the medtimer REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.api, "api", "a", "http://localhost:8080", "medtimer service base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	rootCmd.PersistentFlags().IntVar(&opts.retries, "retries", 0, "Retry transport failures this many times")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log HTTP requests and responses")

	rootCmd.AddCommand(newMedsCmd(opts), newEntriesCmd(opts), newHealthCmd(opts))
	return rootCmd
}

func (o *rootOptions) client() (*client.Client, error) {
	return client.New(o.api,
		client.WithHTTPTimeout(o.timeout),
		client.WithRetries(o.retries, 500*time.Millisecond),
		client.WithDebugLogging(o.debug),
	)
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show service health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			st, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), st); err != nil {
				return err
			}
			if !st.Healthy() {
				return fmt.Errorf("service is %s", st.Status)
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
