package termgrid

import (
	"html"
	"strings"
)

// HTML returns the styled HTML projection: one inline-styled element per
// styled span, rows separated by LF; spans with no color or attribute are
// emitted as bare escaped text. The encoding is not bit-exact but preserves
// the visual appearance, including inverse video and faint text.
func (t *Terminal) HTML() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	defaultFgHex := colorHex(t.defaultFg)
	defaultBgHex := colorHex(t.defaultBg)

	total := t.primaryBuffer.ScrollbackLen() + t.rows

	lines := make([]string, 0, total)
	lastNonEmpty := -1
	for i := 0; i < total; i++ {
		spans := t.rowSpans(t.row(i).Cells, defaultBgHex)
		var sb strings.Builder
		for _, span := range spans {
			sb.WriteString(spanHTML(span, defaultFgHex, defaultBgHex))
		}
		line := sb.String()
		lines = append(lines, line)
		if len(spans) > 0 {
			lastNonEmpty = i
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

// spanHTML renders one span as an inline-styled element. Unstyled spans are
// emitted as bare escaped text.
func spanHTML(span Span, defaultFg, defaultBg string) string {
	fg := span.Fg
	bg := span.Bg

	if span.Flags&StyleInverse != 0 {
		f := fg
		if f == "" {
			f = defaultFg
		}
		b := bg
		if b == "" {
			b = defaultBg
		}
		fg, bg = b, f
	}

	var styles []string
	if fg != "" {
		styles = append(styles, "color:"+fg)
	}
	if bg != "" {
		styles = append(styles, "background-color:"+bg)
	}
	if span.Flags&StyleBold != 0 {
		styles = append(styles, "font-weight:bold")
	}
	if span.Flags&StyleFaint != 0 {
		styles = append(styles, "opacity:0.6")
	}
	if span.Flags&StyleItalic != 0 {
		styles = append(styles, "font-style:italic")
	}

	var decorations []string
	if span.Flags&StyleUnderline != 0 {
		decorations = append(decorations, "underline")
	}
	if span.Flags&StyleStrikethrough != 0 {
		decorations = append(decorations, "line-through")
	}
	if len(decorations) > 0 {
		styles = append(styles, "text-decoration:"+strings.Join(decorations, " "))
	}

	text := html.EscapeString(span.Text)
	if len(styles) == 0 {
		return text
	}
	return `<span style="` + strings.Join(styles, ";") + `">` + text + `</span>`
}
