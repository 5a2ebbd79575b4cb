package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run ledger",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored simulation runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		policyType, _ := cmd.Flags().GetString("policy-type")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := context.Background()
		store, closeLedger, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()

		filters := ports.RunFilters{Limit: limit}
		if policyType != "" {
			parsed, err := policy.ParseType(policyType)
			if err != nil {
				return err
			}
			filters.PolicyType = &parsed
		}

		records, err := store.ListRuns(ctx, filters)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No runs stored.")
			return nil
		}
		for _, record := range records {
			fmt.Printf("%s  %-16s  %s  fingerprint=%s\n",
				record.CreatedAt, record.PolicyType, record.ID, record.Fingerprint)
		}
		fmt.Printf("\n%d run(s)\n", len(records))
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one stored run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := core.ParseRunID(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		store, closeLedger, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()

		record, err := store.GetRun(ctx, id)
		if err != nil {
			return err
		}

		raw, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("policy-type", "", "Filter by policy type")
	runsListCmd.Flags().Int("limit", 20, "Maximum rows to print")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}
