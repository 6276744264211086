package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/dimen"
	"github.com/npillmayer/glyphr/core/font"
	"github.com/npillmayer/glyphr/core/font/truetype/svgdoc"
	"github.com/npillmayer/glyphr/core/font/truetype/textrun"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/glyphr/core/font/truetype/ttquery"
	"github.com/npillmayer/glyphr/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/pterm/pterm"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/language"
)

// Intp is our interpreter object
type Intp struct {
	conf     schuko.Configuration
	repl     *readline.Instance
	font     *font.ScalableFont
	size     float32
	sdfScale int
	text     string           // last text rendered
	bitmap   *ttf.GlyphBitmap // last bitmap rendered
}

// NewIntp creates an interpreter, taking rendering defaults from conf.
func NewIntp(conf schuko.Configuration) *Intp {
	intp := &Intp{
		conf:     conf,
		size:     font.DefaultPixelHeight * 2,
		sdfScale: conf.GetInt("render.sdf"),
	}
	if err := intp.setSize(conf.GetString("render.size")); err != nil {
		pterm.Warning.Println(core.UserMessage(err))
	}
	if intp.sdfScale < 1 {
		intp.sdfScale = 1
	}
	return intp
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Debugf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands
const (
	QUIT int = iota
	HELP
	FONT
	INFO
	GLYPH
	METRICS
	KERN
	SIZE
	RENDER
	SDF
	SAVE
	SVG
	VALIDATE
)

// Command is a parsed input line.
type Command struct {
	code int
	arg  string
}

var commandCodes = map[string]int{
	"quit":     QUIT,
	"exit":     QUIT,
	"help":     HELP,
	"font":     FONT,
	"info":     INFO,
	"glyph":    GLYPH,
	"metrics":  METRICS,
	"kern":     KERN,
	"size":     SIZE,
	"render":   RENDER,
	"sdf":      SDF,
	"save":     SAVE,
	"svg":      SVG,
	"validate": VALIDATE,
}

// parseCommand splits a line into a command word and its argument. Arguments
// of 'render' keep their inner white space.
func parseCommand(line string) (Command, error) {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	code, ok := commandCodes[strings.ToLower(word)]
	if !ok {
		return Command{code: HELP}, fmt.Errorf("unknown command: %s", word)
	}
	cmd := Command{code: code, arg: strings.TrimSpace(arg)}
	tracer().Debugf("parse command = %v", cmd)
	switch code {
	case GLYPH, METRICS, SVG:
		if utf8.RuneCountInString(cmd.arg) != 1 {
			return cmd, fmt.Errorf("%s needs a single character", word)
		}
	case KERN:
		if utf8.RuneCountInString(cmd.arg) != 2 {
			return cmd, errors.New("kern needs a pair of characters")
		}
	case SDF:
		if n, err := strconv.Atoi(cmd.arg); err != nil || n < 1 {
			return cmd, errors.New("sdf needs a scale ≥ 1")
		}
	case FONT, SIZE, RENDER, SAVE:
		if cmd.arg == "" {
			return cmd, fmt.Errorf("%s needs an argument", word)
		}
	}
	return cmd, nil
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
		return false, nil
	case FONT:
		return false, intp.loadFont(cmd.arg)
	case SDF:
		intp.sdfScale, _ = strconv.Atoi(cmd.arg)
		pterm.Printfln("distance field scale is %d", intp.sdfScale)
		if intp.text == "" || intp.font == nil {
			return false, nil
		}
		return false, intp.render(intp.text)
	case SAVE:
		return false, intp.save(cmd.arg)
	case SIZE:
		if err := intp.setSize(cmd.arg); err != nil {
			return false, err
		}
		pterm.Printfln("text size is %gpx", intp.size)
		return false, nil
	}
	if intp.font == nil {
		return false, core.Error(core.EMISSING, "no font loaded, use 'font <name>'")
	}
	f := intp.font.TTF
	switch cmd.code {
	case INFO:
		intp.info()
	case VALIDATE:
		if err := f.Validate(); err != nil {
			return false, err
		}
		pterm.Success.Println("font is valid")
	case GLYPH:
		r, _ := utf8.DecodeRuneInString(cmd.arg)
		scale := f.ScaleInPixels(intp.size)
		glyph, err := f.RenderGlyph(context.Background(), r, scale, nil)
		if err != nil {
			return false, err
		}
		pterm.Printfln("glyph %d for %q: %d×%d pixels at offset (%d,%d), advance %d",
			glyph.Glyph, glyph.Rune, glyph.Image.Width, glyph.Image.Height,
			glyph.XOffset, glyph.YOffset, glyph.XAdvance)
		intp.bitmap = glyph.Image
		preview(glyph.Image)
	case METRICS:
		r, _ := utf8.DecodeRuneInString(cmd.arg)
		intp.metrics(r)
	case KERN:
		runes := []rune(cmd.arg)
		g1, g2 := f.GlyphIndex(runes[0]), f.GlyphIndex(runes[1])
		units := f.GlyphKernAdvance(g1, g2)
		px := f.Kerning(runes[0], runes[1], f.ScaleInPixels(intp.size))
		pterm.Printfln("kerning %q (%d) → %q (%d) = %d units, %d px at %gpx",
			runes[0], g1, runes[1], g2, units, px, intp.size)
	case RENDER:
		return false, intp.render(cmd.arg)
	case SVG:
		r, _ := utf8.DecodeRuneInString(cmd.arg)
		return false, intp.svg(r)
	}
	return false, nil
}

// setSize sets the height of rendered text from a dimension like "24pt".
// Sizes are clamped to the heights typecases support.
func (intp *Intp) setSize(size string) error {
	d, err := dimen.ParseDimen(size, dimen.Dimen(intp.size))
	if err != nil {
		return err
	}
	d = dimen.Clamp(d, font.MinPixelHeight, font.MaxPixelHeight)
	intp.size = d.Pixels()
	return nil
}

// loadFont loads a font from a file path or, failing that, resolves it by name.
func (intp *Intp) loadFont(name string) error {
	if name == "" {
		intp.font = font.FallbackFont()
		pterm.Printfln("using fallback font %s", intp.font.Fontname)
		return nil
	}
	if _, err := os.Stat(name); err == nil {
		f, err := font.LoadTrueTypeFont(name)
		if err != nil {
			return err
		}
		intp.font = f
	} else {
		promise := resources.ResolveTypeCase(name, xfont.StyleNormal, xfont.WeightNormal, intp.size)
		typecase, err := promise.TypeCase()
		if typecase != nil {
			intp.font = typecase.ScalableFontParent()
		}
		if err != nil {
			pterm.Warning.Println(core.UserMessage(err))
		}
	}
	pterm.Printfln("font %s loaded from %s", intp.font.Fontname, intp.font.Filepath)
	return nil
}

func (intp *Intp) info() {
	f := intp.font.TTF
	names := ttquery.NameInfo(f, language.English)
	m := ttquery.FontMetrics(f)
	tags := make([]string, 0, 16)
	for _, t := range f.TableTags() {
		tags = append(tags, t.String())
	}
	data := pterm.TableData{
		{"Property", "Value"},
		{"Family", names["family"]},
		{"Subfamily", names["subfamily"]},
		{"Version", names["version"]},
		{"Type", ttquery.FontType(f)},
		{"Glyphs", strconv.Itoa(f.GlyphCount())},
		{"Units per em", strconv.Itoa(int(m.UnitsPerEm))},
		{"Ascent / descent / gap", fmt.Sprintf("%d / %d / %d", m.Ascent, m.Descent, m.LineGap)},
		{"x-height / cap-height", fmt.Sprintf("%d / %d", m.XHeight, m.CapHeight)},
		{"Kerning", strconv.FormatBool(f.HasKerning())},
		{"SVG glyphs", strconv.FormatBool(f.HasSVG())},
		{"Layout tables", strings.Join(ttquery.LayoutTables(f), " ")},
		{"Tables", strings.Join(tags, " ")},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot render table: %v", err)
	}
}

func (intp *Intp) metrics(r rune) {
	f := intp.font.TTF
	g := f.GlyphIndex(r)
	gm := ttquery.GlyphMetrics(f, g)
	pm := f.GlyphMetrics(r, ttf.Scale(f.ScaleInPixels(intp.size)))
	data := pterm.TableData{
		{"Metric", "Units", fmt.Sprintf("Pixels at %gpx", intp.size)},
		{"Glyph", strconv.Itoa(int(g)), ""},
		{"Advance", strconv.Itoa(int(gm.Advance)), strconv.Itoa(pm.AdvanceWidth)},
		{"Left side bearing", strconv.Itoa(int(gm.LSB)), strconv.Itoa(pm.LeftSideBearing)},
		{"Right side bearing", strconv.Itoa(int(gm.RSB)), ""},
		{"Bounding box", fmt.Sprintf("%d,%d – %d,%d", gm.BBox.MinX, gm.BBox.MinY, gm.BBox.MaxX, gm.BBox.MaxY),
			pm.Bounds.String()},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot render table: %v", err)
	}
}

func (intp *Intp) render(text string) error {
	spinner, _ := pterm.DefaultSpinner.Start("rendering")
	bitmap, err := textrun.Render(context.Background(), intp.font.TTF, text, intp.size, intp.sdfScale)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("%d×%d pixels", bitmap.Width, bitmap.Height))
	intp.text, intp.bitmap = text, bitmap
	preview(bitmap)
	return nil
}

// save writes the last rendered bitmap as black on white to a PNG file.
// Bare file names are placed in the cache directory.
func (intp *Intp) save(name string) error {
	if intp.bitmap.Empty() {
		return core.Error(core.EMISSING, "nothing rendered yet")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		name += ".png"
	}
	if filepath.Base(name) == name {
		dir, err := resources.CacheDirPath(intp.conf, "png")
		if err != nil {
			return err
		}
		name = filepath.Join(dir, name)
	}
	out, err := os.Create(name)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", name)
	}
	defer out.Close()
	img := textrun.Tint(intp.bitmap, color.Black, color.White)
	if err = png.Encode(out, img); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write %s", name)
	}
	pterm.Success.Printfln("saved %s", name)
	return nil
}

func (intp *Intp) svg(r rune) error {
	f := intp.font.TTF
	g := f.GlyphIndex(r)
	doc, ok := f.SVGDocument(g)
	if !ok {
		return core.Error(core.EMISSING, "font has no SVG document for %q", r)
	}
	info, err := svgdoc.Inspect(doc, g)
	if err != nil {
		return err
	}
	pterm.Printfln("SVG document for glyph %d: %d bytes", g, len(doc))
	if info.HasViewBox {
		pterm.Printfln("  viewBox %v", info.ViewBox)
	}
	if w, h, ok := info.Extent(dimen.Dimen(intp.size)); ok {
		pterm.Printfln("  size %s × %s", w, h)
	}
	pterm.Printfln("  glyph element present: %v", info.HasGlyph)
	pterm.Printfln("  %d style rules, fill colors %v", info.StyleRules, info.Fills)
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	font <name|path>   load a font file or resolve a font by name
	info               show font names, metrics and tables
	validate           check the font's tables
	glyph <c>          render the glyph for character c
	metrics <c>        show metrics of the glyph for character c
	kern <ab>          show kerning between characters a and b
	size <dimen>       set the text size, e.g. 32px, 24pt or 2em
	render <text>      render a line of text
	sdf <n>            render at n times the size and create a distance field
	save <file>        save the last rendering as PNG
	svg <c>            inspect the SVG document of character c
	quit               leave (or <ctrl>D)
	`)
	pterm.Printfln("distance fields saturate at %d pixels", textrun.Spread)
}
