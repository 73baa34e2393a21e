package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/applicant-ranker/internal/applicant"
	"github.com/spigell/applicant-ranker/internal/features"
	"github.com/spigell/applicant-ranker/internal/lexicon"
	"github.com/spigell/applicant-ranker/internal/logger"
	"github.com/spigell/applicant-ranker/internal/model"
	"github.com/spigell/applicant-ranker/internal/scoring"
	"github.com/spigell/applicant-ranker/internal/store"
	"github.com/spigell/applicant-ranker/internal/utils"
)

const jobPreviewLength = 60

// ModelStore persists the trained model.
type ModelStore interface {
	Load() (*model.Pipeline, error)
	Save(p *model.Pipeline) error
	Path() string
}

type Options struct {
	// ModelDir is where the model artifact lives. Empty means store.DefaultDir.
	ModelDir string
	// Store overrides ModelDir when set.
	Store ModelStore

	Lexicon  *lexicon.Lexicon
	Workers  int
	MaxBatch int
	Training model.Params
	Logger   *zap.Logger
}

// Engine ranks resumes against a job description. It is safe for concurrent
// use: Rank calls never block on Train, and a model swap is observed by a
// Rank call either entirely or not at all.
type Engine struct {
	extractor *features.Extractor
	store     ModelStore
	rules     *scoring.RuleScorer

	model   atomic.Pointer[model.Pipeline]
	trainMu sync.Mutex

	workers  int
	maxBatch int
	params   model.Params
	logger   *zap.Logger
}

// New builds an engine and loads a previously trained model when one exists.
// A missing artifact selects rule-based scoring; a corrupt one is an error.
func New(opts Options) (*Engine, error) {
	log := logger.WithFields(opts.Logger)

	s := opts.Store
	if s == nil {
		fs, err := store.New(opts.ModelDir)
		if err != nil {
			return nil, fmt.Errorf("opening model store: %w", err)
		}
		s = fs
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	params := opts.Training
	if params == (model.Params{}) {
		params = model.DefaultParams()
	}

	e := &Engine{
		extractor: features.NewExtractor(opts.Lexicon),
		store:     s,
		rules:     scoring.NewRuleScorer(),
		workers:   workers,
		maxBatch:  opts.MaxBatch,
		params:    params,
		logger:    log,
	}

	p, err := s.Load()
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("no trained model found, using rule-based scoring", zap.String(logger.FieldModelPath, s.Path()))
	case err != nil:
		return nil, fmt.Errorf("loading model: %w", err)
	default:
		e.model.Store(p)
		log.Info("trained model loaded",
			zap.String(logger.FieldModelPath, s.Path()),
			zap.Int("trees", len(p.Trees)),
		)
	}

	return e, nil
}

// Mode reports which scorer the next Rank call will use.
func (e *Engine) Mode() string {
	if e.model.Load() != nil {
		return scoring.NameModel
	}
	return scoring.NameRules
}

func (e *Engine) HasModel() bool {
	return e.model.Load() != nil
}

func (e *Engine) ModelPath() string {
	return e.store.Path()
}

func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.extractor.Lexicon()
}

// scorer picks the strategy for a whole ranking call.
func (e *Engine) scorer() (scoring.Scorer, error) {
	p := e.model.Load()
	if p == nil {
		return e.rules, nil
	}
	return scoring.NewModelScorer(p)
}

// Rank scores every resume against job and returns the results ordered by
// score, highest first. Equal scores keep their input order. Any scoring
// failure fails the whole call.
func (e *Engine) Rank(ctx context.Context, job string, resumes []applicant.Resume) ([]scoring.Result, error) {
	if e.maxBatch > 0 && len(resumes) > e.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(resumes), e.maxBatch)
	}

	s, err := e.scorer()
	if err != nil {
		return nil, err
	}

	log := logger.WithCommonFields(e.logger, s.Name(), e.store.Path())
	log.Debug("ranking applicants",
		zap.String("job", utils.FirstLine(job, jobPreviewLength)),
		zap.Int("count", len(resumes)),
	)

	results := make([]scoring.Result, len(resumes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, r := range resumes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := s.Score(r.ID, e.extractor.Extract(job, r))
			if err != nil {
				return err
			}

			log.Debug("candidate scored", logger.Candidate(r.ID), zap.Float64("score", res.Score))
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking with %s scorer: %w", s.Name(), err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	log.Info("applicants ranked", zap.Int("count", len(results)))

	return results, nil
}

// Train fits a new model on labeled vectors, persists it and makes it the
// active model. On any failure the previous model stays in place, both on
// disk and in memory.
func (e *Engine) Train(ctx context.Context, data []features.Vector) error {
	rows, labels, err := trainingMatrix(data)
	if err != nil {
		return err
	}

	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	e.logger.Info("training model",
		zap.Int("samples", len(rows)),
		zap.Int("trees", e.params.Trees),
		zap.Int("leaves", e.params.Leaves),
		zap.Float64("learning_rate", e.params.LearningRate),
	)

	p, err := model.Fit(features.Columns, rows, labels, e.params)
	if err != nil {
		return fmt.Errorf("fitting model: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := e.store.Save(p); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	e.model.Store(p)

	e.logger.Info("model trained",
		zap.String(logger.FieldModelPath, e.store.Path()),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}

func trainingMatrix(data []features.Vector) ([][]float64, []float64, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyTrainingSet
	}

	rows := make([][]float64, len(data))
	labels := make([]float64, len(data))
	for i, v := range data {
		if v.Label == nil {
			return nil, nil, &TrainingDataError{Index: i, Message: "missing label"}
		}
		if math.IsNaN(*v.Label) || math.IsInf(*v.Label, 0) {
			return nil, nil, &TrainingDataError{Index: i, Message: "label is not a finite number"}
		}

		rows[i] = v.Values()
		for j, x := range rows[i] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, nil, &TrainingDataError{Index: i, Message: fmt.Sprintf("%s is not a finite number", features.Columns[j])}
			}
		}
		labels[i] = *v.Label
	}

	return rows, labels, nil
}
