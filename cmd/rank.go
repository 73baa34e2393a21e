package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/applicant-ranker/internal/logger"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank resumes against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addRankFlags(rankCmd)
}

func rank(cmd *cobra.Command) {
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

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	results, err := rankCandidates(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("ranking applicants", zap.Error(err))
	}

	if err := writeOutput(cmd, results); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}
}
