package theme

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/patrickmn/go-cache"
)

// Theme is the active theme. StylesheetDir holds the child theme, TemplateDir
// the parent; both are the same directory for a theme without parent.
type Theme struct {
	vo.Theme
	StylesheetDir string
	TemplateDir   string
}

// Locator resolves theme template files, child theme first.
type Locator struct {
	theme Theme
	cache *cache.Cache
}

func NewLocator(theme Theme, ttl time.Duration) *Locator {
	if theme.TemplateDir == "" {
		theme.TemplateDir = theme.StylesheetDir
	}
	return &Locator{
		theme: theme,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (l *Locator) Theme() vo.Theme {
	return l.theme.Theme
}

// LocateTemplate returns the path of the first existing template in names, or
// "" when the theme ships none of them.
func (l *Locator) LocateTemplate(names ...string) string {
	key := strings.Join(names, "|")
	if x, found := l.cache.Get(key); found {
		return x.(string)
	}
	path := l.locate(names)
	l.cache.Set(key, path, cache.DefaultExpiration)
	return path
}

func (l *Locator) locate(names []string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		for _, dir := range []string{l.theme.StylesheetDir, l.theme.TemplateDir} {
			if dir == "" {
				continue
			}
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}
