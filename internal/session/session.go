// Package session owns the currently loaded dataset. Loading parses both
// sources concurrently, merges them and swaps the result in as a whole.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures parsing and merging.
type Options struct {
	Parse parser.Options
	Merge dataset.MergeOptions
}

// DefaultOptions parses with type inference and tags rows train/test.
func DefaultOptions() Options {
	return Options{Parse: parser.DefaultOptions(), Merge: dataset.DefaultMergeOptions()}
}

// Session holds a single replaceable dataset reference. Readers get the
// snapshot that was current when they asked and never see a partial reload.
type Session struct {
	opt     Options
	log     *zap.Logger
	current atomic.Pointer[dataset.Dataset]
}

// New creates a session. A nil logger disables logging.
func New(opt Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opt.Merge.SourceColumn == "" {
		opt.Merge = dataset.DefaultMergeOptions()
	}
	return &Session{opt: opt, log: log}
}

// Load parses the train and test files, merges them and makes the result the
// current dataset. On any error the previous dataset stays in place.
func (s *Session) Load(ctx context.Context, trainPath, testPath string) (*dataset.Dataset, error) {
	if err := checkInputs(map[string]string{s.opt.Merge.TrainTag: trainPath, s.opt.Merge.TestTag: testPath}, s.opt.Merge); err != nil {
		return nil, err
	}
	var train, test *parser.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.parse(gctx, trainPath)
		train = res
		return err
	})
	g.Go(func() error {
		res, err := s.parse(gctx, testPath)
		test = res
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("load aborted", zap.Error(err))
		return nil, err
	}
	ds := dataset.Merge(train.Rows, test.Rows, s.opt.Merge)
	s.current.Store(ds)
	s.log.Info("dataset loaded",
		zap.Int("rows", ds.Len()),
		zap.Int("train_rows", len(ds.Train)),
		zap.Int("test_rows", len(ds.Test)),
		zap.Int("columns", len(dataset.Columns(ds))))
	return ds, nil
}

func (s *Session) parse(ctx context.Context, path string) (*parser.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.log.Debug("parsing source", zap.String("path", path))
	res, err := parser.ParseFile(path, s.opt.Parse)
	if err != nil {
		return nil, err
	}
	s.log.Debug("parsed source", zap.String("path", path), zap.Int("rows", len(res.Rows)))
	return res, nil
}

// Dataset returns the current dataset or dataset.ErrEmptyDataset when
// nothing with rows has been loaded yet.
func (s *Session) Dataset() (*dataset.Dataset, error) {
	ds := s.current.Load()
	if ds.Empty() {
		return nil, dataset.ErrEmptyDataset
	}
	return ds, nil
}

// checkInputs reports every missing source before any parsing starts.
func checkInputs(paths map[string]string, opt dataset.MergeOptions) error {
	var missing []string
	for _, tag := range []string{opt.TrainTag, opt.TestTag} {
		p := strings.TrimSpace(paths[tag])
		if p == "" {
			missing = append(missing, tag)
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				missing = append(missing, fmt.Sprintf("%s (%s)", tag, p))
				continue
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
	}
	if len(missing) > 0 {
		return &dataset.MissingInputError{Missing: missing}
	}
	return nil
}
