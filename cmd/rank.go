package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/export"
	"github.com/adeolu/candidate-ranker/internal/models"
)

var rankOutput string

var rankCmd = &cobra.Command{
	Use:   "rank <dir>",
	Short: "Rank every resume file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rank(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "write the report to an .xlsx file")
}

func rank(cmd *cobra.Command, dir string) error {
	log, err := getLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := getConfig()
	if err != nil {
		return err
	}

	a := buildAgent(cfg, log)
	report, err := a.AnalyzeDir(cmd.Context(), dir, cfg.DefaultCriteria())
	if err != nil {
		return err
	}

	fmt.Printf("%-5s %-35s %-8s %-8s %-10s %-10s\n", "RANK", "CANDIDATE", "TOTAL", "SKILLS", "EDUCATION", "EXPERIENCE")
	for _, c := range report.Candidates {
		fmt.Printf("%-5d %-35s %-8.3f %-8.2f %-10.2f %-10.2f\n",
			c.Rank,
			truncate(c.CandidateID, 35),
			c.Score,
			c.ScoreBreakdown[models.CriterionSkills],
			c.ScoreBreakdown[models.CriterionEducation],
			c.ScoreBreakdown[models.CriterionExperience])
	}

	if rankOutput != "" {
		if err := export.ToExcel(report, rankOutput); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", rankOutput))
	}

	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit-3]) + "..."
}
