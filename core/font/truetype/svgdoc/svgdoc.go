/*
Package svgdoc inspects SVG documents of color fonts.

Fonts with a table 'SVG ' carry one SVG document per range of glyphs. The glyph
with index g is the element with id "glyph<g>" within that document. Package ttf
locates documents but does not look into them; Inspect reports what a renderer
for the document would have to deal with.

Documents are parsed with the HTML5 parser of golang.org/x/net/html, which
treats SVG as foreign content. Style sheets and inline styles are parsed with
douceur.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package svgdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/dimen"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}

// Info holds facts about an SVG document.
type Info struct {
	ViewBox       [4]float64 // min-x, min-y, width, height
	HasViewBox    bool
	Width, Height string   // attributes of the root element, unparsed
	HasGlyph      bool     // the document contains an element for the glyph
	Fills         []string // distinct fill colors, in document order
	StyleRules    int      // number of rules in style sheets
}

// Extent returns the size of the document's viewport. Attributes 'width' and
// 'height' take precedence over the view box; 'em' units are resolved against
// em. Percentages refer to an outer viewport and are ignored.
func (info Info) Extent(em dimen.Dimen) (w, h dimen.Dimen, ok bool) {
	length := func(attr string, fromViewBox float64) (dimen.Dimen, bool) {
		if attr != "" && !strings.HasSuffix(attr, "%") {
			if d, err := dimen.ParseDimen(attr, em); err == nil {
				return d, true
			}
			tracer().Debugf("SVG document has invalid length %q", attr)
		}
		return dimen.Dimen(fromViewBox), info.HasViewBox
	}
	var wok, hok bool
	w, wok = length(info.Width, info.ViewBox[2])
	h, hok = length(info.Height, info.ViewBox[3])
	return w, h, wok && hok && w > 0 && h > 0
}

var (
	svgRoot = cascadia.MustCompile("svg")
	styles  = cascadia.MustCompile("style")
	styled  = cascadia.MustCompile("[style]")
	filled  = cascadia.MustCompile("[fill]")
)

// Inspect parses an SVG document and reports on it, looking for the element
// of glyph g.
//
// If the document has no root element 'svg', an error with code core.EINVALID
// is returned. Malformed style sheets are skipped.
func Inspect(doc string, g ttf.GlyphIndex) (Info, error) {
	info := Info{}
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return info, core.WrapError(err, core.EINVALID, "cannot parse SVG document")
	}
	svg := svgRoot.MatchFirst(root)
	if svg == nil {
		return info, core.Error(core.EINVALID, "SVG document has no element 'svg'")
	}
	info.Width = attr(svg, "width")
	info.Height = attr(svg, "height")
	if vb := attr(svg, "viewBox"); vb != "" {
		info.ViewBox, info.HasViewBox = parseViewBox(vb)
	}
	if sel, err := cascadia.Compile(fmt.Sprintf("#glyph%d", g)); err == nil {
		info.HasGlyph = sel.MatchFirst(svg) != nil
	}
	seen := make(map[string]bool)
	addFill := func(c string) {
		c = strings.ToLower(strings.TrimSpace(c))
		switch c {
		case "", "none", "inherit", "currentcolor":
			return
		}
		if !seen[c] {
			seen[c] = true
			info.Fills = append(info.Fills, c)
		}
	}
	for _, s := range styles.MatchAll(svg) {
		sheet, err := parser.Parse(textContent(s))
		if err != nil {
			tracer().Errorf("skipping malformed style sheet: %v", err)
			continue
		}
		info.StyleRules += len(sheet.Rules)
		for _, rule := range sheet.Rules {
			fillsOf(rule.Declarations, addFill)
		}
	}
	for _, n := range styled.MatchAll(svg) {
		decls, err := parser.ParseDeclarations(attr(n, "style"))
		if err != nil {
			tracer().Debugf("skipping malformed inline style: %v", err)
			continue
		}
		fillsOf(decls, addFill)
	}
	for _, n := range filled.MatchAll(svg) {
		addFill(attr(n, "fill"))
	}
	return info, nil
}

func fillsOf(decls []*css.Declaration, add func(string)) {
	for _, d := range decls {
		if strings.EqualFold(d.Property, "fill") {
			add(d.Value)
		}
	}
}

// attr returns the value of an attribute. Attribute names are compared
// case-insensitively, as the HTML parser may have lowercased them.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func parseViewBox(vb string) ([4]float64, bool) {
	var box [4]float64
	fields := strings.FieldsFunc(vb, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return box, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return box, false
		}
		box[i] = v
	}
	return box, true
}
