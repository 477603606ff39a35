package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/detect"
	"github.com/truthguard/truthguard/internal/model"
)

var (
	validateQuery    string
	validateResponse string
	validateOrg      string
	validateIndustry string
	validateModel    string
	validateCorrect  bool
	validateJSON     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a single AI response",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		in := detect.Input{
			Query:          validateQuery,
			Response:       validateResponse,
			OrganizationID: validateOrg,
			Industry:       validateIndustry,
			AIModel:        validateModel,
		}
		if in.Industry == "" {
			in.Industry = cfg.Detection.DefaultIndustry
		}
		result := e.Detector.Detect(ctx, in)

		interactionID := saveResult(ctx, e, in, result)

		var correction *model.Correction
		if validateCorrect && result.Status != model.StatusApproved {
			c := e.Corrector.Generate(ctx, in.Query, in.Response, result.Violations)
			correction = &c
		}

		if validateJSON {
			out := map[string]any{
				"interaction_id": interactionID,
				"result":         result,
			}
			if correction != nil {
				out["correction"] = correction
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Println(result.Explanation)
		if correction != nil {
			fmt.Println("\nSuggested correction:")
			fmt.Println(correction.CorrectedResponse)
			for _, change := range correction.ChangesMade {
				fmt.Println("  -", change)
			}
		}
		return nil
	},
}

// saveResult persists the detection. Persistence failures are logged
// and an empty interaction ID is returned; the result still stands.
func saveResult(ctx context.Context, e *env, in detect.Input, result *model.DetectionResult) string {
	id, err := e.Store.SaveDetection(ctx, model.Interaction{
		OrganizationID: in.OrganizationID,
		UserQuery:      in.Query,
		AIResponse:     in.Response,
		AIModel:        in.AIModel,
		SessionID:      in.SessionID,
		CreatedAt:      time.Now().UTC(),
	}, result)
	if err != nil {
		zap.L().Error("validate: persisting detection failed", zap.Error(err))
		return ""
	}
	return id
}

func init() {
	validateCmd.Flags().StringVarP(&validateQuery, "query", "q", "", "original customer query")
	validateCmd.Flags().StringVarP(&validateResponse, "response", "r", "", "AI response to validate")
	validateCmd.Flags().StringVar(&validateOrg, "org", "", "organization ID")
	validateCmd.Flags().StringVar(&validateIndustry, "industry", "", "industry for rule scoping")
	validateCmd.Flags().StringVar(&validateModel, "model", "", "AI model that produced the response")
	validateCmd.Flags().BoolVar(&validateCorrect, "correct", false, "generate a corrected response when not approved")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit JSON instead of the explanation")
	validateCmd.MarkFlagRequired("response")
	rootCmd.AddCommand(validateCmd)
}
