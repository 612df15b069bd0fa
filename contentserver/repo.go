package contentserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/foomo/contentserver-portfolio/service/vo"
	contentserverclient "github.com/foomo/contentserver/client"
	"github.com/foomo/contentserver/content"
	"github.com/foomo/contentserver/requests"
	"go.uber.org/zap"
)

var (
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
	ErrRootNotFound    = errors.New("root node not found")
)

// MimeTypes are the content types the repo requests from the content server.
var MimeTypes = []string{vo.PostType, vo.TaxCategory, vo.TaxSkill}

// NodeGetter is the part of the contentserver client the repo needs.
type NodeGetter interface {
	GetNodes(ctx context.Context, env *requests.Env, nodes map[string]*requests.Node) (map[string]*content.Node, error)
}

type Settings struct {
	Env              *requests.Env
	ContentServerURL string
	// RootID is the node below which portfolio entries and terms live.
	RootID string
}

// Repo implements the helper's content, term and meta capabilities on top of
// a content server tree.
type Repo struct {
	logger   *zap.Logger
	nodes    NodeGetter
	settings Settings
}

func NewRepo(logger *zap.Logger, settings Settings, httpClient *http.Client) *Repo {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	contentServerClient := contentserverclient.New(
		contentserverclient.NewHTTPTransport(
			settings.ContentServerURL,
			contentserverclient.HTTPTransportWithHTTPClient(httpClient),
		))
	return NewRepoWithNodes(logger, settings, contentServerClient)
}

func NewRepoWithNodes(logger *zap.Logger, settings Settings, nodes NodeGetter) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{
		logger:   logger,
		nodes:    nodes,
		settings: settings,
	}
}

type catalog struct {
	entries []vo.Entry
	byID    map[string]int
	terms   map[string][]vo.Term
}

func (c *catalog) entry(id string) (vo.Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return vo.Entry{}, false
	}
	return c.entries[i], true
}

func (c *catalog) term(taxonomy, id string) (vo.Term, bool) {
	for _, term := range c.terms[taxonomy] {
		if term.ID == id {
			return term, true
		}
	}
	return vo.Term{}, false
}

func (r *Repo) load(ctx context.Context) (*catalog, error) {
	dimension := ""
	if r.settings.Env != nil && len(r.settings.Env.Dimensions) > 0 {
		dimension = r.settings.Env.Dimensions[0]
	}
	nodes, err := r.nodes.GetNodes(ctx, r.settings.Env, map[string]*requests.Node{
		r.settings.RootID: {
			ID:        r.settings.RootID,
			Dimension: dimension,
			MimeTypes: MimeTypes,
			Expand:    true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio nodes: %w", err)
	}
	root, ok := nodes[r.settings.RootID]
	if !ok || root == nil {
		return nil, ErrRootNotFound
	}

	c := &catalog{
		byID:  map[string]int{},
		terms: map[string][]vo.Term{},
	}
	r.collect(c, root)
	r.countTerms(c)
	r.logger.Debug("loaded portfolio catalog",
		zap.Int("entries", len(c.entries)),
		zap.Int("categories", len(c.terms[vo.TaxCategory])),
		zap.Int("skills", len(c.terms[vo.TaxSkill])),
	)
	return c, nil
}

func (r *Repo) collect(c *catalog, node *content.Node) {
	if item := node.Item; item != nil {
		switch item.MimeType {
		case vo.PostType:
			if _, dup := c.byID[item.ID]; !dup {
				c.byID[item.ID] = len(c.entries)
				c.entries = append(c.entries, entryFromItem(item))
			}
		case vo.TaxCategory, vo.TaxSkill:
			if _, dup := c.term(item.MimeType, item.ID); !dup {
				c.terms[item.MimeType] = append(c.terms[item.MimeType], termFromItem(item))
			}
		}
	}
	for _, id := range node.Index {
		child, ok := node.Nodes[id]
		if !ok || child == nil {
			r.logger.Warn("child node not found", zap.String("id", id))
			continue
		}
		r.collect(c, child)
	}
}

func (r *Repo) countTerms(c *catalog) {
	for taxonomy, terms := range c.terms {
		for i := range terms {
			for _, entry := range c.entries {
				if entry.Status == vo.StatusPublic && slices.Contains(entry.TermIDs(taxonomy), terms[i].ID) {
					terms[i].Count++
				}
			}
		}
	}
}

func entryFromItem(item *content.Item) vo.Entry {
	entry := vo.Entry{
		ID:         item.ID,
		Title:      item.Name,
		URI:        item.URI,
		PostType:   item.MimeType,
		Status:     dataString(item.Data, "status"),
		Slug:       dataString(item.Data, "slug"),
		MenuOrder:  dataInt(item.Data, "menuOrder"),
		Categories: dataStrings(item.Data, "categories"),
		Skills:     dataStrings(item.Data, "skills"),
		Meta:       map[string]any{},
	}
	if entry.Status == "" {
		entry.Status = vo.StatusPublic
	}
	if date, err := time.Parse(time.RFC3339, dataString(item.Data, "date")); err == nil {
		entry.Date = date
	}
	if meta, ok := item.Data["meta"].(map[string]interface{}); ok {
		for k, v := range meta {
			entry.Meta[k] = v
		}
	}
	return entry
}

func termFromItem(item *content.Item) vo.Term {
	term := vo.Term{
		ID:       item.ID,
		Name:     item.Name,
		Slug:     dataString(item.Data, "slug"),
		Taxonomy: item.MimeType,
	}
	if term.Slug == "" {
		term.Slug = strings.ToLower(strings.Join(strings.Fields(item.Name), "-"))
	}
	return term
}

func dataString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func dataInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func dataStrings(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, value := range v {
			values = append(values, metaString(value))
		}
		return values
	}
	return nil
}

func (r *Repo) QueryEntries(ctx context.Context, query vo.Query) ([]vo.Entry, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return Match(c.entries, query), nil
}

// EntryTerms returns nil when the entry is unknown or has no terms.
func (r *Repo) EntryTerms(ctx context.Context, entryID, taxonomy string) ([]vo.Term, error) {
	if !validTaxonomy(taxonomy) {
		return nil, ErrInvalidTaxonomy
	}
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := c.entry(entryID)
	if !ok {
		return nil, nil
	}
	var terms []vo.Term
	for _, id := range entry.TermIDs(taxonomy) {
		if term, ok := c.term(taxonomy, id); ok {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// ObjectTerms returns the distinct terms attached to any of the entries ordered
// by name.
func (r *Repo) ObjectTerms(ctx context.Context, entryIDs []string, taxonomy string) ([]vo.Term, error) {
	if !validTaxonomy(taxonomy) {
		return nil, ErrInvalidTaxonomy
	}
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	terms := []vo.Term{}
	for _, entryID := range entryIDs {
		entry, ok := c.entry(entryID)
		if !ok {
			continue
		}
		for _, id := range entry.TermIDs(taxonomy) {
			if seen[id] {
				continue
			}
			if term, ok := c.term(taxonomy, id); ok {
				seen[id] = true
				terms = append(terms, term)
			}
		}
	}
	sortTermsByName(terms)
	return terms, nil
}

// Terms lists the terms of a taxonomy ordered by name.
func (r *Repo) Terms(ctx context.Context, query vo.TermQuery) ([]vo.Term, error) {
	if !validTaxonomy(query.Taxonomy) {
		return nil, ErrInvalidTaxonomy
	}
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	terms := make([]vo.Term, 0, len(c.terms[query.Taxonomy]))
	for _, term := range c.terms[query.Taxonomy] {
		if query.HideEmpty && term.Count == 0 {
			continue
		}
		terms = append(terms, term)
	}
	sortTermsByName(terms)
	return terms, nil
}

func sortTermsByName(terms []vo.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return strings.ToLower(terms[i].Name) < strings.ToLower(terms[j].Name)
	})
}

func (r *Repo) EntryMeta(ctx context.Context, entryID, key string) (any, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := c.entry(entryID)
	if !ok {
		return nil, nil
	}
	return entry.Meta[key], nil
}

func validTaxonomy(taxonomy string) bool {
	return taxonomy == vo.TaxCategory || taxonomy == vo.TaxSkill
}
