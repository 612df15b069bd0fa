package shortcode

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Handler renders one shortcode occurrence from its attributes.
type Handler func(ctx context.Context, attrs map[string]string) (string, error)

var (
	tagPattern  = regexp.MustCompile(`\[([A-Za-z0-9_-]+)((?:\s[^\]]*)?)\]`)
	attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s'"\]]+))`)
)

// Runner expands registered shortcodes, unknown ones are left untouched.
type Runner struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRunner() *Runner {
	return &Runner{handlers: map[string]Handler{}}
}

func (r *Runner) Add(tag string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[tag] = handler
}

func (r *Runner) handler(tag string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[tag]
	return h, ok
}

func (r *Runner) Do(ctx context.Context, content string) (string, error) {
	if !strings.Contains(content, "[") {
		return content, nil
	}
	var (
		sb   strings.Builder
		last int
	)
	for _, m := range tagPattern.FindAllStringSubmatchIndex(content, -1) {
		tag := content[m[2]:m[3]]
		h, ok := r.handler(tag)
		if !ok {
			continue
		}
		out, err := h(ctx, parseAttrs(content[m[4]:m[5]]))
		if err != nil {
			return "", fmt.Errorf("shortcode %s: %w", tag, err)
		}
		sb.WriteString(content[last:m[0]])
		sb.WriteString(out)
		last = m[1]
	}
	sb.WriteString(content[last:])
	return sb.String(), nil
}

func parseAttrs(s string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		key := strings.ToLower(m[1])
		switch {
		case m[2] != "":
			attrs[key] = m[2]
		case m[3] != "":
			attrs[key] = m[3]
		default:
			attrs[key] = m[4]
		}
	}
	return attrs
}
