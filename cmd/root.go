package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/agent"
	"github.com/adeolu/candidate-ranker/internal/config"
	"github.com/adeolu/candidate-ranker/internal/extraction"
	"github.com/adeolu/candidate-ranker/internal/ingestion"
	"github.com/adeolu/candidate-ranker/internal/logger"
	"github.com/adeolu/candidate-ranker/internal/nlp"
	"github.com/adeolu/candidate-ranker/internal/scoring"
)

const app = "candidate-ranker"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-ranker scores and ranks resumes against weighted criteria",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("a config file (default is %s.yaml in current directory)", app))
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; the built-in defaults carry the full
	// vocabulary and criteria.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
			os.Exit(1)
		}
	}
}

func getConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

// buildAgent wires the pipeline from configuration.
func buildAgent(cfg *config.Config, log *zap.Logger) *agent.Agent {
	extractor := extraction.NewExtractor(
		nlp.NewProseEngine(),
		cfg.Extraction.SkillVocabulary,
		cfg.Extraction.EducationMarkers,
	)
	scorer := scoring.NewScorer(cfg.Scoring.EducationTiers, cfg.Scoring.ExperienceIndicators)
	files := ingestion.NewFileHandler(cfg.UploadsDir)

	return agent.New(files, extractor, scorer, cfg.Gmail, log)
}
