// Package bleve provides ranked full-text search over search index entries
// using a bleve index.
package bleve

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/fwojciec/docidx"
)

// BatchSize is the number of documents submitted per bleve batch.
const BatchSize = 100

// DefaultLimit is the number of results returned when no limit is given.
const DefaultLimit = 10

// Compile-time interface verification.
var (
	_ docidx.SearchService = (*Index)(nil)
	_ docidx.Indexer       = (*Index)(nil)
)

// document is the indexed form of an entry.
type document struct {
	SiteID   string `json:"site_id"`
	Position int    `json:"position"`
	Location string `json:"location"`
	Page     string `json:"page"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Index is a bleve-backed full-text index of entries across sites.
type Index struct {
	index bleve.Index
}

// Open opens the index at path, creating it if it does not exist.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err == nil {
		idx, err := bleve.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open search index: %w", err)
		}
		return &Index{index: idx}, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	idx, err := bleve.New(path, newMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: idx}, nil
}

// OpenMem creates a memory-only index.
func OpenMem() (*Index, error) {
	idx, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Close closes the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// DocCount returns the number of indexed entries.
func (i *Index) DocCount() (uint64, error) {
	return i.index.DocCount()
}

func newMapping() mapping.IndexMapping {
	keyword := func() *mapping.FieldMapping {
		fm := bleve.NewKeywordFieldMapping()
		fm.IncludeInAll = false
		return fm
	}

	position := bleve.NewNumericFieldMapping()
	position.IncludeInAll = false

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt("site_id", keyword())
	dm.AddFieldMappingsAt("location", keyword())
	dm.AddFieldMappingsAt("category", keyword())
	dm.AddFieldMappingsAt("position", position)
	dm.AddFieldMappingsAt("page", bleve.NewTextFieldMapping())
	dm.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())
	dm.AddFieldMappingsAt("text", bleve.NewTextFieldMapping())

	im := bleve.NewIndexMapping()
	im.DefaultMapping = dm
	return im
}

func documentID(siteID string, position int) string {
	return siteID + "/" + strconv.Itoa(position)
}

// IndexEntries replaces the indexed entries of a site.
func (i *Index) IndexEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error {
	if siteID == "" {
		return docidx.Errorf(docidx.EINVALID, "site ID required")
	}
	if err := i.RemoveSite(ctx, siteID); err != nil {
		return err
	}

	batch := i.index.NewBatch()
	for pos, e := range entries {
		doc := document{
			SiteID:   siteID,
			Position: pos,
			Location: e.Location,
			Page:     e.Page,
			Title:    e.Title,
			Text:     e.Text,
			Category: string(e.Category),
		}
		if err := batch.Index(documentID(siteID, pos), doc); err != nil {
			return fmt.Errorf("failed to add entry %d to batch: %w", pos, err)
		}

		if batch.Size() >= BatchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := i.index.Batch(batch); err != nil {
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = i.index.NewBatch()
		}
	}

	// Submit remaining
	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}
	return nil
}

// RemoveSite deletes every indexed entry of a site.
func (i *Index) RemoveSite(ctx context.Context, siteID string) error {
	q := bleve.NewTermQuery(siteID)
	q.SetField("site_id")

	for {
		req := bleve.NewSearchRequestOptions(q, 1000, 0, false)
		res, err := i.index.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to find site documents: %w", err)
		}
		if len(res.Hits) == 0 {
			return nil
		}

		batch := i.index.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to delete site documents: %w", err)
		}
	}
}

// Search returns entries ranked by relevance to q.
func (i *Index) Search(ctx context.Context, q string, opts docidx.SearchOptions) ([]docidx.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, docidx.Errorf(docidx.EINVALID, "search query required")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	conjuncts := []query.Query{bleve.NewMatchQuery(q)}
	if len(opts.SiteIDs) > 0 {
		conjuncts = append(conjuncts, anyTerm("site_id", opts.SiteIDs))
	}
	if len(opts.Categories) > 0 {
		categories := make([]string, len(opts.Categories))
		for j, c := range opts.Categories {
			categories[j] = string(c)
		}
		conjuncts = append(conjuncts, anyTerm("category", categories))
	}

	var root query.Query = conjuncts[0]
	if len(conjuncts) > 1 {
		root = bleve.NewConjunctionQuery(conjuncts...)
	}

	req := bleve.NewSearchRequestOptions(root, limit, 0, false)
	req.Fields = []string{"*"}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]docidx.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		e := &docidx.SearchEntry{}
		if v, ok := hit.Fields["site_id"].(string); ok {
			e.SiteID = v
		}
		if v, ok := hit.Fields["position"].(float64); ok {
			e.Position = int(v)
		}
		if v, ok := hit.Fields["location"].(string); ok {
			e.Location = v
		}
		if v, ok := hit.Fields["page"].(string); ok {
			e.Page = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			e.Title = v
		}
		if v, ok := hit.Fields["text"].(string); ok {
			e.Text = v
		}
		if v, ok := hit.Fields["category"].(string); ok {
			e.Category = docidx.Category(v)
		}
		results = append(results, docidx.SearchResult{Entry: e, Score: hit.Score})
	}
	return results, nil
}

func anyTerm(field string, values []string) query.Query {
	disjuncts := make([]query.Query, len(values))
	for j, v := range values {
		tq := bleve.NewTermQuery(v)
		tq.SetField(field)
		disjuncts[j] = tq
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}
