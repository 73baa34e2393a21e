package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/applicant-ranker/internal/logger"
	"github.com/spigell/applicant-ranker/internal/shortlist"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Rank resumes and keep the best candidates that pass the configured thresholds",
	Run: func(cmd *cobra.Command, _ []string) {
		runShortlist(cmd)
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)
	addRankFlags(shortlistCmd)

	shortlistCmd.Flags().IntP("top", "n", shortlist.DefaultTop, "number of candidates to keep")
	shortlistCmd.Flags().Float64("min-score", 0, "minimum score (0-100)")
	shortlistCmd.Flags().Float64("min-education", 0, "minimum education level (0.2-1.0)")
	shortlistCmd.Flags().Float64("min-experience", 0, "minimum years of experience")

	viper.BindPFlag("shortlist.top", shortlistCmd.Flags().Lookup("top"))
	viper.BindPFlag("shortlist.min-score", shortlistCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("shortlist.min-education", shortlistCmd.Flags().Lookup("min-education"))
	viper.BindPFlag("shortlist.min-experience", shortlistCmd.Flags().Lookup("min-experience"))
}

func runShortlist(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	results, err := rankCandidates(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("ranking applicants", zap.Error(err))
	}

	steps := shortlist.Steps(*config.Shortlist)
	for _, status := range shortlist.Describe(steps) {
		logger.Debug("shortlist filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	entries, err := shortlist.Run(ctx, logger, steps, results)
	if err != nil {
		logger.Fatal("shortlisting applicants", zap.Error(err))
	}

	if len(entries) == 0 {
		logger.Info("no candidates left after shortlist filters")
	}

	if err := writeOutput(cmd, entries); err != nil {
		logger.Fatal("writing shortlist", zap.Error(err))
	}
}
