package main

import (
	"github.com/spf13/cobra"
)

func newEntriesCmd(opts *rootOptions) *cobra.Command {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Dosage entry queries"}

	var count int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			entries, err := c.ListEntries(cmd.Context(), count)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	listCmd.Flags().IntVarP(&count, "count", "c", 0, "Maximum results (server default when 0)")
	entriesCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get ENTRY_UUID",
		Short: "Get entry by UUID",
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
			entry, err := c.GetEntry(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	entriesCmd.AddCommand(getCmd)

	var uuidCount int
	byMedUUIDCmd := &cobra.Command{
		Use:   "by-med-uuid MEDICATION_UUID",
		Short: "List entries for a medication UUID",
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
			entries, err := c.ListEntriesByMedicationUUID(cmd.Context(), id, uuidCount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	byMedUUIDCmd.Flags().IntVarP(&uuidCount, "count", "c", 0, "Maximum results (server default when 0)")
	entriesCmd.AddCommand(byMedUUIDCmd)

	var nameCount int
	byMedNameCmd := &cobra.Command{
		Use:   "by-med-name NAME",
		Short: "List entries joined with their medication, by medication name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			entries, err := c.ListEntriesByMedicationName(cmd.Context(), args[0], nameCount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	byMedNameCmd.Flags().IntVarP(&nameCount, "count", "c", 0, "Maximum results (server default when 0)")
	entriesCmd.AddCommand(byMedNameCmd)

	return entriesCmd
}
