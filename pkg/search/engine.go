package search

import (
	"context"
	"errors"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

var ErrClosed = errors.New("search engine closed")

// Doc is one indexable record. Field names decide which mapping applies;
// unmapped fields are ignored.
type Doc struct {
	ID     string
	Fields map[string]any
}

// Engine is a small in-memory full-text index. Replace swaps the whole
// corpus at once, which fits data that is periodically refetched rather
// than incrementally edited.
type Engine struct {
	mapping *mapping.IndexMappingImpl
	mu      sync.RWMutex
	index   bleve.Index
	closed  bool
}

// Mapping describes which document fields are searchable text and which
// are exact-match keywords.
type Mapping struct {
	TextFields    []string
	KeywordFields []string
}

func New(m Mapping) (*Engine, error) {
	im := buildIndexMapping(m)
	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, err
	}
	return &Engine{mapping: im, index: idx}, nil
}

func buildIndexMapping(m Mapping) *mapping.IndexMappingImpl {
	im := mapping.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	text := mapping.NewTextFieldMapping()
	text.Store = false
	text.Index = true
	text.IncludeInAll = true

	kw := mapping.NewTextFieldMapping()
	kw.Store = false
	kw.Index = true
	kw.Analyzer = keyword.Name

	doc := mapping.NewDocumentMapping()
	doc.Dynamic = false
	for _, f := range m.TextFields {
		doc.AddFieldMappingsAt(f, text)
	}
	for _, f := range m.KeywordFields {
		doc.AddFieldMappingsAt(f, kw)
	}
	im.DefaultMapping = doc
	return im
}

// Replace drops the current corpus and indexes docs in its place.
func (e *Engine) Replace(ctx context.Context, docs []Doc) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	// A fresh mem-only index is cheaper than deleting document by document.
	idx, err := bleve.NewMemOnly(e.mapping)
	if err != nil {
		return err
	}
	b := idx.NewBatch()
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			_ = idx.Close()
			return err
		}
		if err := b.Index(d.ID, d.Fields); err != nil {
			_ = idx.Close()
			return err
		}
	}
	if err := idx.Batch(b); err != nil {
		_ = idx.Close()
		return err
	}
	old := e.index
	e.index = idx
	return old.Close()
}

// Search matches q against all indexed fields and returns doc IDs ranked
// by relevance, at most limit of them.
func (e *Engine) Search(ctx context.Context, q string, limit int) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(q), limit, 0, false)
	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.index.Close()
}
