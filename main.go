package main

import (
	"log"
	"net/http"
	"os"

	"github.com/foomo/contentserver-portfolio/config"
	"github.com/foomo/contentserver-portfolio/contentserver"
	"github.com/foomo/contentserver-portfolio/mcp"
	"github.com/foomo/contentserver-portfolio/service"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/foomo/contentserver-portfolio/settings"
	"github.com/foomo/contentserver-portfolio/shortcode"
	"github.com/foomo/contentserver-portfolio/theme"
	"github.com/foomo/contentserver-portfolio/widget"
	"github.com/foomo/contentserver/requests"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	options, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		logger.Fatal("failed to load settings", zap.String("file", cfg.SettingsFile), zap.Error(err))
	}

	repo := contentserver.NewRepo(logger.Named("contentserver"), contentserver.Settings{
		Env:              &requests.Env{Dimensions: []string{cfg.Dimension}},
		ContentServerURL: cfg.ContentServerURL,
		RootID:           cfg.RootID,
	}, http.DefaultClient)

	activeTheme := theme.Theme{
		Theme:         vo.Theme{Name: cfg.ThemeName, Template: cfg.ThemeTemplate},
		StylesheetDir: cfg.StylesheetDir,
		TemplateDir:   cfg.TemplateDir,
	}
	locator := theme.NewLocator(activeTheme, cfg.TemplateCacheTTL)

	portfolioService := service.NewService(logger.Named("portfolio"), service.Host{
		Content:   repo,
		Terms:     repo,
		Meta:      repo,
		Options:   options,
		Templates: locator,
	})

	shortcodes := shortcode.NewRunner()
	shortcode.NewPortfolio(portfolioService, locator.Theme()).Register(shortcodes)

	widgets := widget.NewRegistry()
	if _, err := widget.New(logger.Named("widget"), widgets, shortcodes, cfg.AdminURL); err != nil {
		logger.Fatal("failed to create widget", zap.Error(err))
	}

	s := mcp.NewServer(logger, portfolioService, locator.Theme(), widgets)

	if cfg.HTTPAddr != "" {
		logger.Info("Starting MCP server", zap.String("addr", cfg.HTTPAddr), zap.String("endpoint", cfg.Endpoint))
		if err := http.ListenAndServe(cfg.HTTPAddr, mcp.NewMcpHTTPHandler(logger, s, widgets, cfg.Endpoint)); err != nil {
			logger.Fatal("http server stopped", zap.Error(err))
		}
		return
	}
	logger.Info("Starting MCP server in stdio mode...")
	if err := server.ServeStdio(s); err != nil {
		logger.Fatal("stdio server stopped", zap.Error(err))
	}
}

// newLogger writes to stderr so the stdio transport keeps stdout.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
