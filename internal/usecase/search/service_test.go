package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

// --- Mocks ---

type mockEngine struct {
	raws           []result.Raw
	err            error
	lastQuery      string
	lastCategories []string
	calls          int
}

func (m *mockEngine) Search(_ context.Context, q string, categories []string) ([]result.Raw, error) {
	m.calls++
	m.lastQuery = q
	m.lastCategories = categories
	return m.raws, m.err
}

func newQuery(t *testing.T, text string, k kind.Kind, limit int) query.Query {
	t.Helper()
	q, err := query.New(text, k, limit, 0)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func textRaw(i int) result.Raw {
	return result.Raw{
		Title:   fmt.Sprintf("<b>Result %d</b>", i),
		Content: fmt.Sprintf("Snippet %d", i),
		URL:     fmt.Sprintf("https://example.com/%d", i),
	}
}

// --- Tests ---

func TestSearch_TextCategoriesAndOrder(t *testing.T) {
	raws := make([]result.Raw, 20)
	for i := range raws {
		raws[i] = textRaw(i)
	}
	engine := &mockEngine{raws: raws}
	svc := New(engine, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "  gopher ", kind.Text, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.lastQuery != "gopher" {
		t.Errorf("expected trimmed query, got %q", engine.lastQuery)
	}
	if !slices.Equal(engine.lastCategories, []string{"general"}) {
		t.Errorf("unexpected categories %v", engine.lastCategories)
	}
	if set.Kind() != kind.Text || set.Len() != 20 {
		t.Fatalf("expected 20 text results, got %d (%s)", set.Len(), set.Kind())
	}
	for i, r := range set.Texts() {
		if r.Title() != fmt.Sprintf("Result %d", i) {
			t.Fatalf("order not preserved at %d: %q", i, r.Title())
		}
	}
}

func TestSearch_ImageCategories(t *testing.T) {
	engine := &mockEngine{raws: []result.Raw{
		{Title: "pic", URL: "https://example.com/p", ThumbnailSrc: "t.jpg", ImgSrc: "full.jpg", Category: "images"},
		{Title: "clip", URL: "https://example.com/v", Thumbnail: "v.jpg", IframeSrc: "embed", Category: "videos"},
	}}
	svc := New(engine, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "gopher", kind.Images, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(engine.lastCategories, []string{"images", "videos"}) {
		t.Errorf("unexpected categories %v", engine.lastCategories)
	}
	images := set.Images()
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0].Source() != "full.jpg" || images[1].Source() != "embed" {
		t.Errorf("unexpected sources: %q, %q", images[0].Source(), images[1].Source())
	}
}

func TestSearch_LimitAppliedBeforeNormalization(t *testing.T) {
	raws := make([]result.Raw, 10)
	for i := range raws {
		raws[i] = textRaw(i)
	}
	raws[1].Content = "" // rejected, not backfilled from beyond the limit

	svc := New(&mockEngine{raws: raws}, domain.DefaultSearchConfig(), zap.NewNop())
	set, err := svc.Search(context.Background(), newQuery(t, "gopher", kind.Text, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", set.Len())
	}
}

func TestSearch_DropsRejectedAndDuplicates(t *testing.T) {
	engine := &mockEngine{raws: []result.Raw{
		textRaw(0),
		{Title: "no content", URL: "https://example.com/x"},
		{Title: "dup", Content: "again", URL: "https://example.com/0"},
		{Title: "image", Content: "[data:image/png;base64,AA]", URL: "https://example.com/y"},
		textRaw(1),
	}}
	svc := New(engine, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "gopher", kind.Text, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	texts := set.Texts()
	if len(texts) != 2 {
		t.Fatalf("expected 2 results, got %d", len(texts))
	}
	if texts[0].Title() != "Result 0" || texts[1].Title() != "Result 1" {
		t.Errorf("unexpected results: %+v", texts)
	}
}

func TestSearch_ImagesFromOnePageKept(t *testing.T) {
	var raws []result.Raw
	for i := range 3 {
		raws = append(raws, result.Raw{
			Title:        fmt.Sprintf("Gallery image %d", i),
			URL:          "https://commons.example.org/gallery",
			Category:     "images",
			ThumbnailSrc: fmt.Sprintf("https://commons.example.org/thumb/%d.jpg", i),
			ImgSrc:       fmt.Sprintf("https://commons.example.org/full/%d.jpg", i),
		})
	}
	raws = append(raws, raws[1])
	svc := New(&mockEngine{raws: raws}, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "gallery", kind.Images, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	images := set.Images()
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}
	for i, img := range images {
		if want := fmt.Sprintf("https://commons.example.org/full/%d.jpg", i); img.Source() != want {
			t.Errorf("image %d: expected source %q, got %q", i, want, img.Source())
		}
	}
}

func TestSearch_EngineErrorReturnsEmpty(t *testing.T) {
	engine := &mockEngine{err: fmt.Errorf("boom: %w", domain.ErrSearchProviderError)}
	svc := New(engine, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "gopher", kind.Images, 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if set.Len() != 0 || set.Kind() != kind.Images {
		t.Errorf("expected empty image set, got %d %s", set.Len(), set.Kind())
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &mockEngine{err: context.Canceled}
	svc := New(engine, domain.DefaultSearchConfig(), zap.NewNop())

	_, err := svc.Search(ctx, newQuery(t, "gopher", kind.Text, 0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSearch_NoResults(t *testing.T) {
	svc := New(&mockEngine{}, domain.DefaultSearchConfig(), zap.NewNop())

	set, err := svc.Search(context.Background(), newQuery(t, "gopher", kind.Text, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set, got %d", set.Len())
	}
}
