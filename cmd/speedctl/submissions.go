package main

import (
	"speed_go_backend/internal/services"

	"github.com/spf13/cobra"
)

func init() {
	submissionsCmd.AddCommand(submissionsDuplicatesCmd)
	rootCmd.AddCommand(submissionsCmd)
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect submissions",
}

var submissionsDuplicatesCmd = &cobra.Command{
	Use:   "duplicates <id>",
	Short: "List accepted submissions that may duplicate a submission",
	Long: `Run duplicate detection for one submission, the same ranking moderators
see: DOI matches first, then titles at least 80% similar, at most five.

Example:
  speedctl submissions duplicates 3f2c9a1e-5d7b-4c1a-9f0e-2b8d6c4a7e10 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmissionsDuplicates,
}

func runSubmissionsDuplicates(cmd *cobra.Command, args []string) error {
	cfg, db := openDB()
	submissionServiceDB := services.NewSubmissionServiceDB(db)
	moderationService := services.NewModerationService(submissionServiceDB, services.NewDuplicateDetector(submissionServiceDB), nil, cfg.DuplicateCorpusName)

	details, err := moderationService.DetailsForModeration(cmd.Context(), args[0])
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if !humanOutput {
		return outputJSON(details.PotentialDuplicates)
	}
	outputHuman("%s [%s]\n", details.Submission.Title, details.Submission.Status)
	if len(details.PotentialDuplicates) == 0 {
		outputHuman("  no potential duplicates\n")
		return nil
	}
	for _, d := range details.PotentialDuplicates {
		outputHuman("  %.2f  %s  %s  doi:%s\n", d.SimilarityScore, d.ID, d.Title, d.DOI)
	}
	return nil
}
