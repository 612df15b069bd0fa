package config

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrNoTransport = errors.New("no transport: pass -http or leave -stdio enabled")

type Config struct {
	Stdio    bool
	HTTPAddr string
	Endpoint string
	Debug    bool

	ContentServerURL string
	RootID           string
	Dimension        string

	SettingsFile string
	AdminURL     string

	ThemeName        string
	ThemeTemplate    string
	StylesheetDir    string
	TemplateDir      string
	TemplateCacheTTL time.Duration
}

// Load reads .env when present and parses args. Environment variables provide
// the flag defaults.
func Load(args []string) (*Config, error) {
	// a missing .env is fine, the process environment is used then
	_ = godotenv.Load()

	c := &Config{}
	fs := flag.NewFlagSet("portfolio-mcp", flag.ContinueOnError)
	fs.BoolVar(&c.Stdio, "stdio", true, "Run in stdio mode when -http is not set")
	fs.StringVar(&c.HTTPAddr, "http", env("PORTFOLIO_HTTP_ADDR", ""), "HTTP server address (e.g., ':8080')")
	fs.StringVar(&c.Endpoint, "endpoint", env("PORTFOLIO_ENDPOINT", "/mcp"), "HTTP endpoint path")
	fs.BoolVar(&c.Debug, "debug", env("PORTFOLIO_DEBUG", "") != "", "Enable debug logging")
	fs.StringVar(&c.ContentServerURL, "contentserver", env("PORTFOLIO_CONTENTSERVER_URL", "http://localhost:8080"), "Content server URL")
	fs.StringVar(&c.RootID, "root", env("PORTFOLIO_ROOT_ID", "portfolio"), "Content server node holding portfolio entries and terms")
	fs.StringVar(&c.Dimension, "dimension", env("PORTFOLIO_DIMENSION", "default"), "Content server dimension")
	fs.StringVar(&c.SettingsFile, "settings", env("PORTFOLIO_SETTINGS", "settings.yaml"), "YAML file with site options")
	fs.StringVar(&c.AdminURL, "admin-url", env("PORTFOLIO_ADMIN_URL", "/wp-admin/"), "Base URL of the admin screens")
	fs.StringVar(&c.ThemeName, "theme-name", env("PORTFOLIO_THEME_NAME", ""), "Declared name of the active theme")
	fs.StringVar(&c.ThemeTemplate, "theme-template", env("PORTFOLIO_THEME_TEMPLATE", ""), "Parent template of the active theme")
	fs.StringVar(&c.StylesheetDir, "theme-dir", env("PORTFOLIO_THEME_DIR", ""), "Directory of the active theme")
	fs.StringVar(&c.TemplateDir, "parent-theme-dir", env("PORTFOLIO_PARENT_THEME_DIR", ""), "Directory of the parent theme")
	fs.DurationVar(&c.TemplateCacheTTL, "template-cache-ttl", time.Minute, "How long template lookups are cached")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !c.Stdio && c.HTTPAddr == "" {
		fs.Usage()
		return nil, ErrNoTransport
	}
	if !strings.HasPrefix(c.Endpoint, "/") {
		c.Endpoint = "/" + c.Endpoint
	}
	return c, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
