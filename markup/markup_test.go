package markup

import (
	"strings"
	"testing"

	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Recent work", want: "Recent work"},
		{name: "trims and collapses", in: "  Recent \n\t work  ", want: "Recent work"},
		{name: "strips tags", in: "<b>Recent</b> <i>work</i>", want: "Recent work"},
		{name: "drops script body", in: "Recent<script>alert(1)</script> work", want: "Recent work"},
		{name: "keeps entities", in: "Tom &amp; Jerry<br/>", want: "Tom &amp; Jerry"},
		{name: "removes octets", in: "100%25 done", want: "100 done"},
		{name: "invalid utf8", in: "bad\xff", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "markup", in: `<b>"x"</b>`, want: "&lt;b&gt;&#34;x&#34;&lt;/b&gt;"},
		{name: "bare ampersand", in: "Tom & Jerry", want: "Tom &amp; Jerry"},
		{name: "named reference", in: "Tom &amp; Jerry", want: "Tom &amp; Jerry"},
		{name: "numeric references", in: "&#38; &#x26;", want: "&#38; &#x26;"},
		{name: "unknown reference", in: "&bogus; &", want: "&amp;bogus; &amp;"},
		{name: "legacy prefix", in: "&ampx;", want: "&amp;ampx;"},
		{name: "mixed", in: "a &lt; b & 'c'", want: "a &lt; b &amp; &#39;c&#39;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeAttr(tt.in))
		})
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(`<section><h2>Portfolio</h2><p>Selected <a href="/portfolio/one">work</a></p></section>`)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Portfolio")
	assert.Contains(t, string(md), "[work](/portfolio/one)")
}

func TestFind(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div id="a" class="x item"><span class="item">one</span><span class="item-two">two</span></div>`))
	require.NoError(t, err)

	n, err := Find(doc, "#a")
	require.NoError(t, err)
	assert.Equal(t, "div", n.Data)

	n, err = Find(doc, "span")
	require.NoError(t, err)
	assert.Equal(t, "one", Text(n))

	_, err = Find(doc, ".missing")
	require.Error(t, err)

	items := FindAll(doc, ".item")
	require.Len(t, items, 2)
	assert.Equal(t, "div", items[0].Data)
	assert.Equal(t, "one", Text(items[1]))
}

func TestLinks(t *testing.T) {
	links, err := Links(`<ul><li><a href="/one"> First
	<b>project</b></a></li><li><a name="anchor">skip</a></li><li><a href="/portfolio_cat/web">Web</a></li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, []vo.Link{
		{Text: "First project", Href: "/one"},
		{Text: "Web", Href: "/portfolio_cat/web"},
	}, links)

	links, err = Links("")
	require.NoError(t, err)
	assert.Empty(t, links)
}
