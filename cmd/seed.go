package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/seed"
)

var (
	seedRulesFile    string
	seedPoliciesFile string
	seedIndustry     string
	seedOrg          string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load rules and policies into the store",
	Long:  "Loads compliance rules and policies from YAML fixture files, and optionally built-in regulatory templates for an industry.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if seedRulesFile != "" {
			rules, err := seed.LoadRuleFile(seedRulesFile)
			if err != nil {
				return err
			}
			for i := range rules {
				if rules[i].OrganizationID == "" {
					rules[i].OrganizationID = seedOrg
				}
			}
			if err := st.SeedRules(ctx, rules); err != nil {
				return err
			}
			zap.L().Info("seeded rules", zap.Int("count", len(rules)), zap.String("file", seedRulesFile))
		}

		if seedPoliciesFile != "" {
			policies, err := seed.LoadPolicyFile(seedPoliciesFile)
			if err != nil {
				return err
			}
			for i := range policies {
				if policies[i].OrganizationID == "" {
					policies[i].OrganizationID = seedOrg
				}
			}
			if err := st.SeedPolicies(ctx, policies); err != nil {
				return err
			}
			zap.L().Info("seeded policies", zap.Int("count", len(policies)), zap.String("file", seedPoliciesFile))
		}

		if seedIndustry != "" {
			rules := seed.RulesForIndustry(seedIndustry)
			for i := range rules {
				rules[i].OrganizationID = seedOrg
			}
			if err := st.SeedRules(ctx, rules); err != nil {
				return err
			}
			zap.L().Info("seeded regulatory templates",
				zap.Int("count", len(rules)), zap.String("industry", seedIndustry))
		}

		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedRulesFile, "rules", "", "YAML rule fixture file")
	seedCmd.Flags().StringVar(&seedPoliciesFile, "policies", "", "YAML policy fixture file")
	seedCmd.Flags().StringVar(&seedIndustry, "industry", "", "seed built-in regulatory templates for an industry (finance, airline, ...)")
	seedCmd.Flags().StringVar(&seedOrg, "org", "", "organization ID to attach to seeded entries")
	rootCmd.AddCommand(seedCmd)
}
