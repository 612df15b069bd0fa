package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foomo/contentserver-portfolio/markup"
	"github.com/foomo/contentserver-portfolio/service"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/foomo/contentserver-portfolio/widget"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const Version = "0.1.0"

type ListPortfoliosRequest struct {
	PerPage  string `json:"perPage"`  // Numeric page size, ignored otherwise
	Page     string `json:"page"`     // Numeric page number, ignored otherwise
	Featured bool   `json:"featured"` // Only featured entries
}

type EntriesResponse struct {
	Entries []vo.Entry `json:"entries"`
}

type EntryRequest struct {
	ID string `json:"id"` // Portfolio entry id
}

type ImagesResponse struct {
	IDs       []string `json:"ids"`
	HasImages bool     `json:"hasImages"`
}

type CategoriesRequest struct {
	IDs string `json:"ids"` // Comma separated entry ids, all categories when empty
}

type TermsRequest struct{}

type TermsResponse struct {
	Terms []vo.Term `json:"terms"`
}

type ViewContextRequest struct {
	View     string `json:"view"`
	PostType string `json:"postType"`
	Taxonomy string `json:"taxonomy"`
}

type ViewContextResponse struct {
	IsSingle  bool `json:"isSingle"`
	IsArchive bool `json:"isArchive"`
}

type ThemeSupportRequest struct{}

type ThemeSupportResponse struct {
	Theme              vo.Theme `json:"theme"`
	HasSingleTemplate  bool     `json:"hasSingleTemplate"`
	HasArchiveTemplate bool     `json:"hasArchiveTemplate"`
	IsDesignatedTheme  bool     `json:"isDesignatedTheme"`
	LinkTerms          bool     `json:"linkTerms"`
}

type RenderWidgetRequest struct {
	Title        string `json:"title"`
	BeforeWidget string `json:"beforeWidget"`
	AfterWidget  string `json:"afterWidget"`
	BeforeTitle  string `json:"beforeTitle"`
	AfterTitle   string `json:"afterTitle"`
}

type RenderWidgetResponse struct {
	HTML     string      `json:"html"`
	Markdown vo.Markdown `json:"markdown"`
	Links    []vo.Link   `json:"links"`
}

// NewServer creates a new MCP server exposing the portfolio helper
func NewServer(logger *zap.Logger, serviceInstance service.Service, theme vo.Theme, widgets *widget.Registry) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"Filterable Portfolio MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("listPortfolios",
		mcp.WithDescription("List published portfolio entries using the site listing defaults"),
		mcp.WithString("perPage", mcp.Description("Page size override, ignored unless numeric")),
		mcp.WithString("page", mcp.Description("Page number, ignored unless numeric")),
		mcp.WithBoolean("featured", mcp.Description("Only return featured entries")),
	), mcp.NewTypedToolHandler(getListPortfoliosHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("relatedPortfolios",
		mcp.WithDescription("List entries sharing a category or skill with the given entry"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The portfolio entry id")),
	), mcp.NewTypedToolHandler(getRelatedPortfoliosHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("portfolioImages",
		mcp.WithDescription("Get the image ids attached to a portfolio entry"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The portfolio entry id")),
	), mcp.NewTypedToolHandler(getPortfolioImagesHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("portfolioCategories",
		mcp.WithDescription("List portfolio categories, optionally only those of the given entries"),
		mcp.WithString("ids", mcp.Description("Comma separated entry ids")),
	), mcp.NewTypedToolHandler(getPortfolioCategoriesHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("portfolioSkills",
		mcp.WithDescription("List portfolio skills that have published entries"),
	), mcp.NewTypedToolHandler(getPortfolioSkillsHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("viewContext",
		mcp.WithDescription("Tell whether a request renders a single portfolio entry or a portfolio archive"),
		mcp.WithString("view", mcp.Description("single, archive, taxonomy or empty; read from the HTTP request when omitted")),
		mcp.WithString("postType", mcp.Description("Post type of the single entry or archive")),
		mcp.WithString("taxonomy", mcp.Description("Taxonomy of a taxonomy listing")),
	), mcp.NewTypedToolHandler(getViewContextHandler(serviceInstance)))

	s.AddTool(mcp.NewTool("themeSupport",
		mcp.WithDescription("Report which portfolio templates the active theme ships"),
	), mcp.NewTypedToolHandler(getThemeSupportHandler(serviceInstance, theme)))

	if widgets != nil {
		s.AddTool(mcp.NewTool("renderWidget",
			mcp.WithDescription("Render the portfolio widget as HTML and markdown with its links"),
			mcp.WithString("title", mcp.Description("Widget title")),
			mcp.WithString("beforeWidget", mcp.Description("Markup opening the widget")),
			mcp.WithString("afterWidget", mcp.Description("Markup closing the widget")),
			mcp.WithString("beforeTitle", mcp.Description("Markup opening the title")),
			mcp.WithString("afterTitle", mcp.Description("Markup closing the title")),
		), mcp.NewTypedToolHandler(getRenderWidgetHandler(logger, widgets)))
	}

	return s
}

func jsonResult(response any) (*mcp.CallToolResult, error) {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseBytes)), nil
}

func getListPortfoliosHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ListPortfoliosRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListPortfoliosRequest) (*mcp.CallToolResult, error) {
		entries := serviceInstance.ListEntries(ctx, vo.Filter{
			PerPage:  args.PerPage,
			Page:     args.Page,
			Featured: args.Featured,
		})
		return jsonResult(EntriesResponse{Entries: entries})
	}
}

func getRelatedPortfoliosHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args EntryRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args EntryRequest) (*mcp.CallToolResult, error) {
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		return jsonResult(EntriesResponse{Entries: serviceInstance.ListRelatedEntries(ctx, args.ID)})
	}
}

func getPortfolioImagesHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args EntryRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args EntryRequest) (*mcp.CallToolResult, error) {
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		ids := serviceInstance.GetImageReferences(ctx, args.ID)
		return jsonResult(ImagesResponse{IDs: ids, HasImages: len(ids) > 0})
	}
}

func getPortfolioCategoriesHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args CategoriesRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args CategoriesRequest) (*mcp.CallToolResult, error) {
		var entries []vo.Entry
		for _, id := range strings.Split(args.IDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				entries = append(entries, vo.Entry{ID: id})
			}
		}
		if len(entries) == 0 {
			return jsonResult(TermsResponse{Terms: serviceInstance.ListCategories(ctx)})
		}
		return jsonResult(TermsResponse{Terms: serviceInstance.ExtractCategoriesFromEntries(ctx, entries)})
	}
}

func getPortfolioSkillsHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args TermsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args TermsRequest) (*mcp.CallToolResult, error) {
		return jsonResult(TermsResponse{Terms: serviceInstance.ListSkills(ctx)})
	}
}

func getViewContextHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ViewContextRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ViewContextRequest) (*mcp.CallToolResult, error) {
		req := vo.RequestContext{
			View:     vo.View(args.View),
			PostType: args.PostType,
			Taxonomy: args.Taxonomy,
		}
		if req.View == vo.ViewOther {
			if httpReq, ok := httpRequestFromContext(ctx); ok {
				req = RequestContextFromHTTP(httpReq)
			}
		}
		return jsonResult(ViewContextResponse{
			IsSingle:  serviceInstance.IsSingleEntryView(req),
			IsArchive: serviceInstance.IsArchiveView(req),
		})
	}
}

func getThemeSupportHandler(serviceInstance service.Service, theme vo.Theme) func(ctx context.Context, request mcp.CallToolRequest, args ThemeSupportRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ThemeSupportRequest) (*mcp.CallToolResult, error) {
		return jsonResult(ThemeSupportResponse{
			Theme:              theme,
			HasSingleTemplate:  serviceInstance.ActiveThemeHasSingleTemplate(),
			HasArchiveTemplate: serviceInstance.ActiveThemeHasArchiveTemplate(),
			IsDesignatedTheme:  serviceInstance.ActiveThemeIsDesignatedTheme(theme),
			LinkTerms:          serviceInstance.ShouldLinkTaxonomyTerms(theme),
		})
	}
}

func getRenderWidgetHandler(logger *zap.Logger, widgets *widget.Registry) func(ctx context.Context, request mcp.CallToolRequest, args RenderWidgetRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args RenderWidgetRequest) (*mcp.CallToolResult, error) {
		w, ok := widgets.Get(widget.IDBase)
		if !ok {
			return mcp.NewToolResultError("portfolio widget is not registered"), nil
		}

		// the title goes through the same sanitising as a saved widget form
		instance := w.Update(map[string]string{"title": args.Title}, nil)

		var sb strings.Builder
		if err := w.Render(ctx, &sb, vo.WidgetArgs{
			BeforeWidget: args.BeforeWidget,
			AfterWidget:  args.AfterWidget,
			BeforeTitle:  args.BeforeTitle,
			AfterTitle:   args.AfterTitle,
		}, instance); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render widget: %v", err)), nil
		}

		markdown, err := markup.Markdown(sb.String())
		if err != nil {
			logger.Warn("failed to convert widget to markdown", zap.Error(err))
		}

		links, err := markup.Links(sb.String())
		if err != nil {
			logger.Warn("failed to extract widget links", zap.Error(err))
		}

		return jsonResult(RenderWidgetResponse{HTML: sb.String(), Markdown: markdown, Links: links})
	}
}
