package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/applicant-ranker/internal/dataset"
	"github.com/spigell/applicant-ranker/internal/lexicon"
	"github.com/spigell/applicant-ranker/internal/ranking"
	"github.com/spigell/applicant-ranker/internal/scoring"
	"github.com/spigell/applicant-ranker/internal/source"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func newEngine(config *Config, logger *zap.Logger) (*ranking.Engine, error) {
	lex := lexicon.Default()
	if config.Lexicon != nil {
		if len(config.Lexicon.Skills) > 0 {
			lex = lexicon.New(config.Lexicon.Skills...)
		}
		lex = lex.Extend(config.Lexicon.Extra...)
	}

	return ranking.New(ranking.Options{
		ModelDir: config.ModelDir,
		Lexicon:  lex,
		Workers:  config.Workers,
		MaxBatch: config.MaxBatch,
		Training: *config.Training,
		Logger:   logger,
	})
}

// addRankFlags registers the inputs and output flags shared by rank and shortlist.
func addRankFlags(cmd *cobra.Command) {
	cmd.Flags().String("job", "", "job description text")
	cmd.Flags().String("job-file", "", "file with the job description (.txt, .md or .html)")
	cmd.Flags().StringP("resumes", "r", "", "resumes as a .json/.yaml list of {id, text} or a directory of .txt/.html files")
	cmd.Flags().StringP("out", "o", "", "write results to this file instead of stdout")
	cmd.Flags().StringP("format", "f", formatJSON, "output format: json or yaml")

	if err := cmd.MarkFlagRequired("resumes"); err != nil {
		panic(err)
	}
}

// rankCandidates loads the job and resumes named by cmd flags and ranks them.
func rankCandidates(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) ([]scoring.Result, error) {
	jobText, _ := cmd.Flags().GetString("job")
	jobFile, _ := cmd.Flags().GetString("job-file")
	resumesPath, _ := cmd.Flags().GetString("resumes")

	job, err := source.Load(source.Source{Name: "job description", Value: jobText, File: jobFile})
	if err != nil {
		return nil, err
	}

	resumes, err := dataset.LoadResumes(resumesPath)
	if err != nil {
		return nil, fmt.Errorf("loading resumes: %w", err)
	}

	logger.Info("resumes loaded", zap.Int("count", resumes.Len()), zap.String("path", resumesPath))
	logger.Debug("candidates", zap.Strings("ids", resumes.IDs()))

	engine, err := newEngine(config, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("scoring mode", zap.String("scorer", engine.Mode()))

	return engine.Rank(ctx, job, resumes.Items)
}

func writeOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	if strings.TrimSpace(out) == "" {
		return encode(os.Stdout, format, v)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := encode(f, format, v); err != nil {
		return err
	}

	return f.Close()
}

func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
