package widget

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/foomo/contentserver-portfolio/markup"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
)

type stubShortcodes struct {
	calls  []string
	output string
	err    error
}

func (s *stubShortcodes) Do(_ context.Context, content string) (string, error) {
	s.calls = append(s.calls, content)
	return s.output, s.err
}

var args = vo.WidgetArgs{
	BeforeWidget: `<section class="widget">`,
	AfterWidget:  `</section>`,
	BeforeTitle:  `<h2>`,
	AfterTitle:   `</h2>`,
}

func TestNewRegisters(t *testing.T) {
	registry := NewRegistry()
	w, err := New(zaptest.NewLogger(t), registry, nil, "https://example.com/wp-admin")
	require.NoError(t, err)

	got, ok := registry.Get(IDBase)
	require.True(t, ok)
	assert.Same(t, w, got)
	assert.Equal(t, []Metadata{w.Metadata()}, registry.List())
	assert.Equal(t, "Filterable Portfolio", w.Metadata().Name)

	_, err = New(zaptest.NewLogger(t), registry, nil, "")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	shortcodes := &stubShortcodes{output: `<div class="portfolio">items</div>`}
	w, err := New(zaptest.NewLogger(t), nil, shortcodes, "")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, w.Render(context.Background(), &sb, args, vo.WidgetInstance{Title: "Work & <Play>"}))
	assert.Equal(t, `<section class="widget"><h2>Work &amp; &lt;Play&gt;</h2><div class="portfolio">items</div></section>`, sb.String())
	assert.Equal(t, []string{Shortcode}, shortcodes.calls)
}

func TestRenderWithoutTitle(t *testing.T) {
	w, err := New(zaptest.NewLogger(t), nil, &stubShortcodes{output: "list"}, "")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, w.Render(context.Background(), &sb, args, vo.WidgetInstance{}))
	assert.Equal(t, `<section class="widget">list</section>`, sb.String())
}

func TestRenderListingError(t *testing.T) {
	w, err := New(zaptest.NewLogger(t), nil, &stubShortcodes{output: "ignored", err: errors.New("boom")}, "")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, w.Render(context.Background(), &sb, args, vo.WidgetInstance{Title: "T"}))
	assert.Equal(t, `<section class="widget"><h2>T</h2></section>`, sb.String())
}

func TestForm(t *testing.T) {
	w, err := New(zaptest.NewLogger(t), nil, nil, "https://example.com/wp-admin/")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, w.Form(&sb, 3, vo.WidgetInstance{Title: `My "work"`}))

	doc, err := html.Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)

	input, err := markup.Find(doc, "#widget-widget_filterable_portfolio-3-title")
	require.NoError(t, err)
	assert.Equal(t, "input", input.Data)
	assert.Equal(t, "widget-widget_filterable_portfolio[3][title]", markup.Attr(input, "name"))
	assert.Equal(t, `My "work"`, markup.Attr(input, "value"))

	label, err := markup.Find(doc, "label")
	require.NoError(t, err)
	assert.Equal(t, "widget-widget_filterable_portfolio-3-title", markup.Attr(label, "for"))

	link, err := markup.Find(doc, "a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/wp-admin/edit.php?post_type=portfolio&page=fp-settings", markup.Attr(link, "href"))
	assert.Equal(t, "_blank", markup.Attr(link, "target"))
}

func TestUpdate(t *testing.T) {
	w, err := New(zaptest.NewLogger(t), nil, nil, "")
	require.NoError(t, err)

	assert.Equal(t, vo.WidgetInstance{Title: "Latest projects"}, w.Update(map[string]string{"title": "  <em>Latest</em>\n projects "}, nil))
	assert.Equal(t, vo.WidgetInstance{}, w.Update(map[string]string{}, map[string]string{"title": "old"}))
	assert.Equal(t, vo.WidgetInstance{}, w.Update(nil, nil))
}

func TestSavedTitleIsEscapedOnce(t *testing.T) {
	w, err := New(zaptest.NewLogger(t), nil, &stubShortcodes{}, "")
	require.NoError(t, err)

	instance := w.Update(map[string]string{"title": "<b>Tom &amp; Jerry</b>"}, nil)
	require.Equal(t, vo.WidgetInstance{Title: "Tom &amp; Jerry"}, instance)

	var sb strings.Builder
	require.NoError(t, w.Render(context.Background(), &sb, args, instance))
	assert.Equal(t, `<section class="widget"><h2>Tom &amp; Jerry</h2></section>`, sb.String())

	sb.Reset()
	require.NoError(t, w.Form(&sb, 1, instance))
	assert.Contains(t, sb.String(), `value="Tom &amp; Jerry"`)
	assert.NotContains(t, sb.String(), "&amp;amp;")
}
