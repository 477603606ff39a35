package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	interactionsOrg   string
	interactionsLimit int
	interactionsJSON  bool
)

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "List recent validated interactions for an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		items, err := st.ListInteractions(ctx, interactionsOrg, interactionsLimit)
		if err != nil {
			return err
		}

		if interactionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		for _, it := range items {
			fmt.Printf("%s  %-8s  %.2f  %s\n",
				it.CreatedAt.Format("2006-01-02 15:04:05"), it.Status, it.ConfidenceScore, it.UserQuery)
		}
		return nil
	},
}

func init() {
	interactionsCmd.Flags().StringVar(&interactionsOrg, "org", "", "organization ID")
	interactionsCmd.Flags().IntVar(&interactionsLimit, "limit", 20, "maximum interactions to list")
	interactionsCmd.Flags().BoolVar(&interactionsJSON, "json", false, "emit JSON")
	interactionsCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(interactionsCmd)
}
