package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
	"github.com/kailas-cloud/searchproxy/internal/metrics"
	"github.com/kailas-cloud/searchproxy/internal/normalize"
)

// normalizeWorkers bounds concurrent HTML parsing per request.
const normalizeWorkers = 8

// Service runs searches against the engine and normalizes the hits.
type Service struct {
	engine Engine
	cfg    domain.SearchConfig
	logger *zap.Logger
}

// New creates a search service.
func New(engine Engine, cfg domain.SearchConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, cfg: cfg, logger: logger}
}

// Search queries the engine with the categories of the query kind and returns normalized results.
// An engine failure yields an empty set; only caller cancellation is returned as an error.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Set, error) {
	raws, err := s.engine.Search(ctx, q.Text(), s.categories(q.Kind()))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result.Set{}, fmt.Errorf("search: %w", ctxErr)
		}
		s.logger.Warn("Search engine request failed, returning no results",
			zap.String("kind", string(q.Kind())),
			zap.Error(err),
		)
		return result.EmptySet(q.Kind()), nil
	}

	if len(raws) > q.Limit() {
		raws = raws[:q.Limit()]
	}

	var set result.Set
	if q.Kind() == kind.Images {
		set, err = s.graphical(ctx, raws)
	} else {
		set, err = s.textual(ctx, raws)
	}
	if err != nil {
		return result.Set{}, err
	}

	metrics.SearchResultsReturned.WithLabelValues(string(q.Kind())).Observe(float64(set.Len()))
	return set, nil
}

func (s *Service) categories(k kind.Kind) []string {
	if k == kind.Images {
		return s.cfg.ImageCategories
	}
	return s.cfg.TextCategories
}

func (s *Service) textual(ctx context.Context, raws []result.Raw) (result.Set, error) {
	texts := make([]result.Text, len(raws))
	reasons := make([]normalize.Reason, len(raws))

	if err := each(ctx, len(raws), func(i int) {
		texts[i], reasons[i] = normalize.Textual(raws[i])
	}); err != nil {
		return result.Set{}, err
	}

	seen := make(map[string]struct{}, len(texts))
	out := make([]result.Text, 0, len(texts))
	for i, t := range texts {
		if !s.accept(kind.Text, reasons[i], t.URL(), seen) {
			continue
		}
		out = append(out, t)
	}
	return result.NewTextSet(out), nil
}

func (s *Service) graphical(ctx context.Context, raws []result.Raw) (result.Set, error) {
	images := make([]result.Image, len(raws))
	reasons := make([]normalize.Reason, len(raws))

	if err := each(ctx, len(raws), func(i int) {
		images[i], reasons[i] = normalize.Graphical(raws[i])
	}); err != nil {
		return result.Set{}, err
	}

	seen := make(map[string]struct{}, len(images))
	out := make([]result.Image, 0, len(images))
	for i, img := range images {
		if !s.accept(kind.Images, reasons[i], img.URL()+"\x00"+img.Source(), seen) {
			continue
		}
		out = append(out, img)
	}
	return result.NewImageSet(out), nil
}

// accept keeps the first normalized hit per key and counts everything else as dropped.
// Texts are keyed by URL, images by page URL and source, since one page can host many images.
func (s *Service) accept(k kind.Kind, reason normalize.Reason, key string, seen map[string]struct{}) bool {
	if reason != normalize.Accepted {
		metrics.SearchResultsDropped.WithLabelValues(string(k), string(reason)).Inc()
		return false
	}
	if _, dup := seen[key]; dup {
		metrics.SearchResultsDropped.WithLabelValues(string(k), "duplicate").Inc()
		return false
	}
	seen[key] = struct{}{}
	return true
}

// each runs fn for every index on a bounded worker group. Results are written by index,
// so output order matches input order.
func each(ctx context.Context, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeWorkers)
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("normalize results: %w", err)
	}
	return nil
}
