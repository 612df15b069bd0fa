package shortcode

import (
	"context"
	"html/template"
	"strings"

	"github.com/foomo/contentserver-portfolio/service"
	"github.com/foomo/contentserver-portfolio/service/vo"
)

const PortfolioTag = "filterable_portfolio"

var portfolioTemplate = template.Must(template.New(PortfolioTag).Parse(`<div id="filterable-portfolio" class="filterable-portfolio">
{{- if .Categories}}<ul class="filterable-portfolio__terms"><li><button class="is-active" data-filter="*">All</button></li>
{{- range .Categories}}<li><button data-filter=".{{$.Taxonomy}}-{{.Slug}}">{{.Name}}</button></li>{{end}}</ul>{{end}}
<div class="filterable-portfolio__items">
{{- range .Items}}<div class="portfolio-item {{.Classes}}"><a href="{{.Entry.URI}}" class="portfolio-item__title">{{.Entry.Title}}</a>
{{- if .Terms}}<div class="portfolio-item__terms">
{{- range $i, $term := .Terms}}{{if $i}}, {{end}}{{if $.LinkTerms}}<a href="/{{$term.Taxonomy}}/{{$term.Slug}}">{{$term.Name}}</a>{{else}}<span>{{$term.Name}}</span>{{end}}{{end}}</div>{{end}}</div>
{{- end}}</div></div>`))

type portfolioItem struct {
	Entry   vo.Entry
	Classes string
	Terms   []vo.Term
}

type portfolioData struct {
	Taxonomy   string
	Categories []vo.Term
	Items      []portfolioItem
	LinkTerms  bool
}

// Portfolio renders the filterable portfolio listing.
type Portfolio struct {
	service service.Service
	theme   vo.Theme
}

func NewPortfolio(svc service.Service, theme vo.Theme) *Portfolio {
	return &Portfolio{service: svc, theme: theme}
}

// Register adds the listing handler to runner.
func (p *Portfolio) Register(runner *Runner) {
	runner.Add(PortfolioTag, p.Render)
}

// Render accepts the attributes featured, per_page and page.
func (p *Portfolio) Render(ctx context.Context, attrs map[string]string) (string, error) {
	entries := p.service.ListEntries(ctx, vo.Filter{
		PerPage:  attrs["per_page"],
		Page:     attrs["page"],
		Featured: truthy(attrs["featured"]),
	})
	categories := p.service.ExtractCategoriesFromEntries(ctx, entries)
	byID := make(map[string]vo.Term, len(categories))
	for _, term := range categories {
		byID[term.ID] = term
	}

	data := portfolioData{
		Taxonomy:   vo.TaxCategory,
		Categories: categories,
		LinkTerms:  p.service.ShouldLinkTaxonomyTerms(p.theme),
	}
	for _, entry := range entries {
		item := portfolioItem{Entry: entry}
		classes := make([]string, 0, len(entry.Categories))
		for _, id := range entry.Categories {
			if term, ok := byID[id]; ok {
				item.Terms = append(item.Terms, term)
				classes = append(classes, vo.TaxCategory+"-"+term.Slug)
			}
		}
		item.Classes = strings.Join(classes, " ")
		data.Items = append(data.Items, item)
	}

	var sb strings.Builder
	if err := portfolioTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "yes", "true", "on":
		return true
	}
	return false
}
