package service

import (
	"context"
	"strings"

	"github.com/foomo/contentserver-portfolio/markup"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"go.uber.org/zap"
)

const (
	DefaultPerPage        = -1
	DefaultOrderBy        = "ID"
	DefaultOrder          = "DESC"
	DefaultRelatedPerPage = 3

	// DesignatedThemeName and DesignatedThemeTemplate identify the theme family
	// that links taxonomy terms without shipping archive templates.
	DesignatedThemeName     = "Shapla"
	DesignatedThemeTemplate = "shapla"

	SingleTemplate = "single-" + vo.PostType + ".php"
)

var ArchiveTemplates = []string{
	"archive-" + vo.PostType + ".php",
	"taxonomy-" + vo.TaxCategory + ".php",
	"taxonomy-" + vo.TaxSkill + ".php",
}

type Service interface {
	ListEntries(ctx context.Context, filter vo.Filter) []vo.Entry
	ListRelatedEntries(ctx context.Context, entryID string) []vo.Entry
	GetImageReferences(ctx context.Context, entryID string) []string
	HasImages(ctx context.Context, entryID string) bool
	ExtractCategoriesFromEntries(ctx context.Context, entries []vo.Entry) []vo.Term
	ListCategories(ctx context.Context) []vo.Term
	ListSkills(ctx context.Context) []vo.Term
	IsSingleEntryView(req vo.RequestContext) bool
	IsArchiveView(req vo.RequestContext) bool
	ActiveThemeHasSingleTemplate() bool
	ActiveThemeHasArchiveTemplate() bool
	ActiveThemeIsDesignatedTheme(theme vo.Theme) bool
	ShouldLinkTaxonomyTerms(theme vo.Theme) bool
}

type service struct {
	logger *zap.Logger
	host   Host
}

func NewService(logger *zap.Logger, host Host) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		logger: logger,
		host:   host,
	}
}

func (s *service) options() map[string]any {
	if s.host.Options == nil {
		return nil
	}
	options, ok := s.host.Options.Option(vo.OptionKey)
	if !ok {
		return nil
	}
	return options
}

// EntriesQuery assembles the listing query from the site options and filter.
func EntriesQuery(options map[string]any, filter vo.Filter) vo.Query {
	query := vo.Query{
		PostType:   vo.PostType,
		PostStatus: vo.StatusPublic,
		PerPage:    DefaultPerPage,
		OrderBy:    DefaultOrderBy,
		Order:      DefaultOrder,
	}
	if v, ok := options["per_page"]; ok {
		query.PerPage = toInt(v)
	}
	if v, ok := options["orderby"]; ok {
		query.OrderBy = markup.EscapeAttr(toString(v))
	}
	if v, ok := options["order"]; ok {
		query.Order = markup.EscapeAttr(toString(v))
	}

	if isNumeric(filter.PerPage) {
		query.PerPage = toInt(filter.PerPage)
	}
	if isNumeric(filter.Page) {
		query.Paged = toInt(filter.Page)
	}
	if filter.Featured {
		query.Meta = []vo.MetaClause{{Key: vo.MetaFeatured, Value: "yes"}}
	}
	return query
}

// RelatedQuery assembles the query for entries sharing a category or skill
// with the entry. A taxonomy without terms contributes no clause.
func RelatedQuery(options map[string]any, entryID string, categories, skills []vo.Term) vo.Query {
	perPage := DefaultRelatedPerPage
	if v, ok := options["related_projects_number"]; ok {
		perPage = toInt(v)
	}
	query := vo.Query{
		PostType: vo.PostType,
		PerPage:  perPage,
		NotIn:    []string{entryID},
		Tax:      &vo.TaxQuery{Relation: vo.RelationOr},
	}
	if len(categories) > 0 {
		query.Tax.Clauses = append(query.Tax.Clauses, vo.TaxClause{Taxonomy: vo.TaxCategory, Field: "id", Terms: termIDs(categories)})
	}
	if len(skills) > 0 {
		query.Tax.Clauses = append(query.Tax.Clauses, vo.TaxClause{Taxonomy: vo.TaxSkill, Field: "id", Terms: termIDs(skills)})
	}
	return query
}

func termIDs(terms []vo.Term) []string {
	ids := make([]string, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
	}
	return ids
}

func (s *service) query(ctx context.Context, query vo.Query) []vo.Entry {
	if s.host.Content == nil {
		return []vo.Entry{}
	}
	entries, err := s.host.Content.QueryEntries(ctx, query)
	if err != nil {
		s.logger.Warn("content query failed", zap.String("postType", query.PostType), zap.Error(err))
		return []vo.Entry{}
	}
	if entries == nil {
		return []vo.Entry{}
	}
	return entries
}

func (s *service) ListEntries(ctx context.Context, filter vo.Filter) []vo.Entry {
	return s.query(ctx, EntriesQuery(s.options(), filter))
}

func (s *service) entryTerms(ctx context.Context, entryID, taxonomy string) []vo.Term {
	if s.host.Terms == nil {
		return nil
	}
	terms, err := s.host.Terms.EntryTerms(ctx, entryID, taxonomy)
	if err != nil {
		s.logger.Warn("failed to load entry terms", zap.String("entryID", entryID), zap.String("taxonomy", taxonomy), zap.Error(err))
		return nil
	}
	return terms
}

func (s *service) ListRelatedEntries(ctx context.Context, entryID string) []vo.Entry {
	categories := s.entryTerms(ctx, entryID, vo.TaxCategory)
	skills := s.entryTerms(ctx, entryID, vo.TaxSkill)
	entries := s.query(ctx, RelatedQuery(s.options(), entryID, categories, skills))

	// drop the entry itself even when the host ignores NotIn
	related := make([]vo.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != entryID {
			related = append(related, entry)
		}
	}
	return related
}

// ParseImageReferences normalises a stored image list attribute.
func ParseImageReferences(value any) []string {
	switch v := value.(type) {
	case string:
		refs := []string{}
		for _, ref := range strings.Split(strings.TrimRight(v, ","), ",") {
			if ref != "" && ref != "0" {
				refs = append(refs, ref)
			}
		}
		return refs
	case []string:
		return v
	case []any:
		refs := make([]string, len(v))
		for i, ref := range v {
			refs[i] = toString(ref)
		}
		return refs
	}
	return []string{}
}

func (s *service) GetImageReferences(ctx context.Context, entryID string) []string {
	if s.host.Meta == nil {
		return []string{}
	}
	value, err := s.host.Meta.EntryMeta(ctx, entryID, vo.MetaImages)
	if err != nil {
		s.logger.Warn("failed to load image references", zap.String("entryID", entryID), zap.Error(err))
		return []string{}
	}
	return ParseImageReferences(value)
}

func (s *service) HasImages(ctx context.Context, entryID string) bool {
	return len(s.GetImageReferences(ctx, entryID)) > 0
}

func (s *service) ExtractCategoriesFromEntries(ctx context.Context, entries []vo.Entry) []vo.Term {
	if s.host.Terms == nil || len(entries) == 0 {
		return []vo.Term{}
	}
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	terms, err := s.host.Terms.ObjectTerms(ctx, ids, vo.TaxCategory)
	if err != nil {
		s.logger.Warn("failed to load categories of entries", zap.Int("entries", len(ids)), zap.Error(err))
		return []vo.Term{}
	}
	if terms == nil {
		return []vo.Term{}
	}
	return terms
}

func (s *service) taxonomyTerms(ctx context.Context, taxonomy string) []vo.Term {
	if s.host.Terms == nil {
		return []vo.Term{}
	}
	terms, err := s.host.Terms.Terms(ctx, vo.TermQuery{Taxonomy: taxonomy, HideEmpty: true})
	if err != nil {
		s.logger.Warn("term query failed", zap.String("taxonomy", taxonomy), zap.Error(err))
		return []vo.Term{}
	}
	if len(terms) == 0 {
		return []vo.Term{}
	}
	return terms
}

func (s *service) ListCategories(ctx context.Context) []vo.Term {
	return s.taxonomyTerms(ctx, vo.TaxCategory)
}

func (s *service) ListSkills(ctx context.Context) []vo.Term {
	return s.taxonomyTerms(ctx, vo.TaxSkill)
}

func (s *service) IsSingleEntryView(req vo.RequestContext) bool {
	return req.View == vo.ViewSingle && req.PostType == vo.PostType
}

func (s *service) IsArchiveView(req vo.RequestContext) bool {
	switch req.View {
	case vo.ViewPostTypeArchive:
		return req.PostType == vo.PostType
	case vo.ViewTaxonomy:
		return req.Taxonomy == vo.TaxCategory || req.Taxonomy == vo.TaxSkill
	}
	return false
}

func (s *service) locate(names ...string) bool {
	if s.host.Templates == nil {
		return false
	}
	return s.host.Templates.LocateTemplate(names...) != ""
}

func (s *service) ActiveThemeHasSingleTemplate() bool {
	return s.locate(SingleTemplate)
}

func (s *service) ActiveThemeHasArchiveTemplate() bool {
	return s.locate(ArchiveTemplates...)
}

func (s *service) ActiveThemeIsDesignatedTheme(theme vo.Theme) bool {
	return theme.Template == DesignatedThemeTemplate || theme.Name == DesignatedThemeName
}

func (s *service) ShouldLinkTaxonomyTerms(theme vo.Theme) bool {
	return s.ActiveThemeHasArchiveTemplate() || s.ActiveThemeIsDesignatedTheme(theme)
}
