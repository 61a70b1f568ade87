package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMedsCmd(opts *rootOptions) *cobra.Command {
	medsCmd := &cobra.Command{Use: "meds", Short: "Medication queries"}

	// list
	var count int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List medications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			meds, err := c.ListMedications(cmd.Context(), count)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), meds)
		},
	}
	listCmd.Flags().IntVarP(&count, "count", "c", 0, "Maximum results (server default when 0)")
	medsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get MEDICATION_UUID",
		Short: "Get medication by UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUUIDArg(args[0])
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			med, err := c.GetMedication(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), med)
		},
	}
	medsCmd.AddCommand(getCmd)

	// by-name
	var nameCount int
	byNameCmd := &cobra.Command{
		Use:   "by-name NAME",
		Short: "List medications with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			meds, err := c.ListMedicationsByName(cmd.Context(), args[0], nameCount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), meds)
		},
	}
	byNameCmd.Flags().IntVarP(&nameCount, "count", "c", 0, "Maximum results (server default when 0)")
	medsCmd.AddCommand(byNameCmd)

	return medsCmd
}

func parseUUIDArg(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return id, nil
}
