package vo

import "time"

type Markdown string

// Link is an anchor found in rendered markup.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

const (
	PostType     = "portfolio"
	TaxCategory  = "portfolio_cat"
	TaxSkill     = "portfolio_skill"
	StatusPublic = "publish"

	MetaFeatured = "_is_featured_project"
	MetaImages   = "_project_images"

	OptionKey = "filterable_portfolio"
)

// Entry is a single portfolio item as returned by the content query.
type Entry struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug,omitempty"`
	URI        string         `json:"uri,omitempty"`
	PostType   string         `json:"postType"`
	Status     string         `json:"status"`
	Date       time.Time      `json:"date"`
	MenuOrder  int            `json:"menuOrder,omitempty"`
	Categories []string       `json:"categories,omitempty"` // term ids
	Skills     []string       `json:"skills,omitempty"`     // term ids
	Meta       map[string]any `json:"meta,omitempty"`
}

// TermIDs returns the ids of the terms attached to the entry in taxonomy.
func (e Entry) TermIDs(taxonomy string) []string {
	switch taxonomy {
	case TaxCategory:
		return e.Categories
	case TaxSkill:
		return e.Skills
	}
	return nil
}

type Term struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
	Count    int    `json:"count"`
}

// Filter holds caller supplied listing overrides. PerPage and Page are only
// honoured when they hold numeric strings.
type Filter struct {
	PerPage  string `json:"perPage,omitempty"`
	Page     string `json:"page,omitempty"`
	Featured bool   `json:"featured,omitempty"`
}

type MetaClause struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

const (
	RelationAnd = "AND"
	RelationOr  = "OR"
)

type TaxClause struct {
	Taxonomy string   `json:"taxonomy"`
	Field    string   `json:"field"`
	Terms    []string `json:"terms"`
}

type TaxQuery struct {
	Relation string      `json:"relation"`
	Clauses  []TaxClause `json:"clauses"`
}

// Query is the parameter mapping handed to the host's content query.
// PerPage -1 means no limit, Paged 0 means not set.
type Query struct {
	PostType   string       `json:"postType"`
	PostStatus string       `json:"postStatus,omitempty"`
	PerPage    int          `json:"perPage"`
	Paged      int          `json:"paged,omitempty"`
	OrderBy    string       `json:"orderBy,omitempty"`
	Order      string       `json:"order,omitempty"`
	Meta       []MetaClause `json:"meta,omitempty"`
	Tax        *TaxQuery    `json:"tax,omitempty"`
	NotIn      []string     `json:"notIn,omitempty"`
}

type TermQuery struct {
	Taxonomy  string `json:"taxonomy"`
	HideEmpty bool   `json:"hideEmpty"`
}

// WidgetInstance is the per placement widget configuration.
type WidgetInstance struct {
	Title string `json:"title"`
}

// WidgetArgs is the wrapper markup the host supplies when rendering a widget.
type WidgetArgs struct {
	BeforeWidget string `json:"beforeWidget"`
	AfterWidget  string `json:"afterWidget"`
	BeforeTitle  string `json:"beforeTitle"`
	AfterTitle   string `json:"afterTitle"`
}

type View string

const (
	ViewOther           View = ""
	ViewSingle          View = "single"
	ViewPostTypeArchive View = "archive"
	ViewTaxonomy        View = "taxonomy"
)

// RequestContext describes what the current request renders.
type RequestContext struct {
	View     View   `json:"view"`
	PostType string `json:"postType,omitempty"`
	Taxonomy string `json:"taxonomy,omitempty"`
}

// Theme is the active theme's declared name and parent template.
type Theme struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}
