package cmd

import (
	"context"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/applicant-ranker/internal/dataset"
	"github.com/spigell/applicant-ranker/internal/logger"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var overwritePrompt = promptui.Select{
	Label: "A trained model already exists. Overwrite it?",
	Items: []string{PromptYes, PromptNo},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the ranking model on labeled feature records",
	Run: func(cmd *cobra.Command, _ []string) {
		train(cmd)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("data", "", "labeled feature records (.json or .yaml)")
	trainCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before replacing an existing model")

	if err := trainCmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}
}

func train(cmd *cobra.Command) {
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

	path, _ := cmd.Flags().GetString("data")
	data, err := dataset.LoadTraining(path)
	if err != nil {
		logger.Fatal("loading training data", zap.Error(err))
	}

	logger.Info("training data loaded", zap.Int("count", len(data)), zap.String("path", path))

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("creating ranking engine", zap.Error(err))
	}

	if engine.HasModel() && cmd.Flag("yes").Value.String() == "false" {
		_, answer, err := overwritePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if answer != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	if err := engine.Train(ctx, data); err != nil {
		logger.Fatal("training model", zap.Error(err))
	}

	logger.Info("model saved", zap.String("path", engine.ModelPath()))
}
