package service

import (
	"context"

	"github.com/foomo/contentserver-portfolio/service/vo"
)

// ContentQuerier runs a content query against the host.
type ContentQuerier interface {
	QueryEntries(ctx context.Context, query vo.Query) ([]vo.Entry, error)
}

// TermReader answers taxonomy questions. EntryTerms returns nil, nil when the
// entry has no terms in taxonomy.
type TermReader interface {
	EntryTerms(ctx context.Context, entryID, taxonomy string) ([]vo.Term, error)
	ObjectTerms(ctx context.Context, entryIDs []string, taxonomy string) ([]vo.Term, error)
	Terms(ctx context.Context, query vo.TermQuery) ([]vo.Term, error)
}

// MetaReader returns a single stored meta value of an entry, nil when absent.
type MetaReader interface {
	EntryMeta(ctx context.Context, entryID, key string) (any, error)
}

type OptionReader interface {
	Option(key string) (map[string]any, bool)
}

// TemplateLocator returns the path of the first template found, or "".
type TemplateLocator interface {
	LocateTemplate(names ...string) string
}

// Host bundles the capabilities the helper needs.
type Host struct {
	Content   ContentQuerier
	Terms     TermReader
	Meta      MetaReader
	Options   OptionReader
	Templates TemplateLocator
}
