package widget

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/foomo/contentserver-portfolio/markup"
	"github.com/foomo/contentserver-portfolio/service/vo"
	"go.uber.org/zap"
)

const (
	IDBase      = "widget_filterable_portfolio"
	Shortcode   = "[filterable_portfolio]"
	settingsURI = "edit.php?post_type=" + vo.PostType + "&page=fp-settings"
)

type Metadata struct {
	IDBase      string `json:"idBase"`
	Name        string `json:"name"`
	ClassName   string `json:"className"`
	Description string `json:"description"`
}

// Registrar receives the widget once it is constructed.
type Registrar interface {
	RegisterWidget(meta Metadata, w *Widget) error
}

// ShortcodeRunner expands shortcodes in content.
type ShortcodeRunner interface {
	Do(ctx context.Context, content string) (string, error)
}

type Widget struct {
	logger      *zap.Logger
	meta        Metadata
	shortcodes  ShortcodeRunner
	settingsURL string
}

// New builds the portfolio widget and hands it to registrar. adminURL is the
// base of the admin screens, e.g. "https://example.com/wp-admin/".
func New(logger *zap.Logger, registrar Registrar, shortcodes ShortcodeRunner, adminURL string) (*Widget, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adminURL != "" && !strings.HasSuffix(adminURL, "/") {
		adminURL += "/"
	}
	w := &Widget{
		logger: logger,
		meta: Metadata{
			IDBase:      IDBase,
			Name:        "Filterable Portfolio",
			ClassName:   IDBase,
			Description: "Display portfolio images with filtering.",
		},
		shortcodes:  shortcodes,
		settingsURL: adminURL + settingsURI,
	}
	if registrar != nil {
		if err := registrar.RegisterWidget(w.meta, w); err != nil {
			return nil, fmt.Errorf("failed to register widget %s: %w", w.meta.IDBase, err)
		}
	}
	return w, nil
}

func (w *Widget) Metadata() Metadata {
	return w.meta
}

// Render writes the widget: wrapper, optional title, the portfolio listing.
// A failing listing renders empty.
func (w *Widget) Render(ctx context.Context, out io.Writer, args vo.WidgetArgs, instance vo.WidgetInstance) error {
	var sb strings.Builder
	sb.WriteString(args.BeforeWidget)

	if title := markup.EscapeAttr(instance.Title); title != "" {
		sb.WriteString(args.BeforeTitle)
		sb.WriteString(title)
		sb.WriteString(args.AfterTitle)
	}

	if w.shortcodes != nil {
		listing, err := w.shortcodes.Do(ctx, Shortcode)
		if err != nil {
			w.logger.Warn("failed to render portfolio listing", zap.String("widget", w.meta.IDBase), zap.Error(err))
		} else {
			sb.WriteString(listing)
		}
	}

	sb.WriteString(args.AfterWidget)
	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *Widget) fieldID(number int, field string) string {
	return fmt.Sprintf("widget-%s-%d-%s", w.meta.IDBase, number, field)
}

func (w *Widget) fieldName(number int, field string) string {
	return fmt.Sprintf("widget-%s[%d][%s]", w.meta.IDBase, number, field)
}

// Form writes the settings form of the widget placement number.
func (w *Widget) Form(out io.Writer, number int, instance vo.WidgetInstance) error {
	id := w.fieldID(number, "title")
	_, err := fmt.Fprintf(out,
		`<p><label for="%[1]s">%[2]s</label>`+
			`<input type="text" class="widefat" id="%[1]s" name="%[3]s" value="%[4]s" /></p>`+
			`<p><a target="_blank" href="%[5]s">%[6]s</a> %[7]s</p>`,
		id,
		"Title (optional):",
		w.fieldName(number, "title"),
		markup.EscapeAttr(instance.Title),
		markup.EscapeAttr(w.settingsURL),
		"Click here",
		"to change portfolio settings",
	)
	return err
}

// Update builds the instance to store from the submitted form values.
func (w *Widget) Update(newInstance, oldInstance map[string]string) vo.WidgetInstance {
	return vo.WidgetInstance{
		Title: markup.SanitizeText(newInstance["title"]),
	}
}
