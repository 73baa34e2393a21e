package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/applicant-ranker/internal/model"
	"github.com/spigell/applicant-ranker/internal/shortlist"
)

const (
	app       = "applicant-ranker"
	envPrefix = "RANKER"
)

type Config struct {
	ModelDir  string            `mapstructure:"model-dir"`
	Workers   int               `mapstructure:"workers" validate:"gte=0"`
	MaxBatch  int               `mapstructure:"max-batch" validate:"gte=0"`
	Lexicon   *LexiconConfig    `mapstructure:"lexicon"`
	Training  *model.Params     `mapstructure:"training" validate:"required"`
	Shortlist *shortlist.Config `mapstructure:"shortlist" validate:"required"`
}

type LexiconConfig struct {
	// Skills replaces the built-in lexicon when not empty.
	Skills []string `mapstructure:"skills"`
	// Extra is appended to the lexicon.
	Extra []string `mapstructure:"extra"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "applicant-ranker scores and ranks resumes against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultParams()
	viper.SetDefault("model-dir", "")
	viper.SetDefault("workers", 0)
	viper.SetDefault("max-batch", 0)
	viper.SetDefault("lexicon.skills", []string{})
	viper.SetDefault("lexicon.extra", []string{})
	viper.SetDefault("training.trees", defaults.Trees)
	viper.SetDefault("training.leaves", defaults.Leaves)
	viper.SetDefault("training.min-leaf-samples", defaults.MinLeafSamples)
	viper.SetDefault("training.learning-rate", defaults.LearningRate)
	viper.SetDefault("shortlist.top", shortlist.DefaultTop)
	viper.SetDefault("shortlist.min-score", 0.0)
	viper.SetDefault("shortlist.min-education", 0.0)
	viper.SetDefault("shortlist.min-experience", 0.0)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is applicant-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("model-dir", "", "directory with the trained model (default is <user config dir>/ATS/Models)")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel feature extraction workers (default is the number of CPUs)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("model-dir", rootCmd.PersistentFlags().Lookup("model-dir"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The default config file is optional; an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("empty configuration")
	}

	if err := validator.New().Struct(config); err != nil {
		return config, err
	}

	return config, nil
}
