package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"golang.org/x/net/html"
)

var (
	whitespacePattern = regexp.MustCompile(`[\r\n\t ]+`)
	octetPattern      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	entityPattern     = regexp.MustCompile(`&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)
)

// EscapeAttr escapes text for use inside an HTML attribute or element body.
// Character references already present are kept, so escaped text is not
// encoded twice.
func EscapeAttr(s string) string {
	var sb strings.Builder
	last := 0
	for _, m := range entityPattern.FindAllStringIndex(s, -1) {
		ref := s[m[0]:m[1]]
		if u := html.UnescapeString(ref); u == ref || (u != ";" && strings.HasSuffix(u, ";")) {
			// unknown named reference
			continue
		}
		sb.WriteString(html.EscapeString(s[last:m[0]]))
		sb.WriteString(ref)
		last = m[1]
	}
	sb.WriteString(html.EscapeString(s[last:]))
	return sb.String()
}

// SanitizeText turns user input into a single line of plain text: invalid
// UTF-8 yields "", tags are stripped along with script and style bodies,
// whitespace runs collapse to one space and percent-encoded octets are removed.
func SanitizeText(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	if strings.Contains(s, "<") {
		s = stripTags(s)
	}
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))

	found := false
	for octetPattern.MatchString(s) {
		s = octetPattern.ReplaceAllString(s, "")
		found = true
	}
	if found {
		s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	}
	return s
}

// stripTags keeps the raw text between tags so entities stay encoded.
func stripTags(s string) string {
	var (
		sb   strings.Builder
		skip string
	)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip == "" {
				sb.Write(z.Raw())
			}
		}
	}
}

// Markdown converts an HTML fragment to markdown.
func Markdown(fragment string) (vo.Markdown, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	body, err := Find(doc, "body")
	if err != nil {
		return "", fmt.Errorf("failed to extract body: %w", err)
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(body)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return vo.Markdown(strings.TrimSpace(string(markdownBytes))), nil
}

// Links returns the anchors of an HTML fragment in document order. Anchors
// without href are skipped.
func Links(fragment string) ([]vo.Link, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	links := []vo.Link{}
	for _, a := range FindAll(doc, "a") {
		href := Attr(a, "href")
		if href == "" {
			continue
		}
		links = append(links, vo.Link{
			Text: strings.TrimSpace(whitespacePattern.ReplaceAllString(Text(a), " ")),
			Href: href,
		})
	}
	return links, nil
}
