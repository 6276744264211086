/*
Command ttcli is an interactive tool to inspect TrueType fonts and render text
with them.

	ttcli -font GoRegular.ttf -size 36pt

Fonts are given as a file path or as a font name, which is then searched for
among the system fonts. Type 'help' at the prompt for a list of commands.

Configuration is read from a NestedText file 'glyphr.nt' in the user's
configuration directory, or from a file given with flag -config. Keys:

	tracing.adapter      go | logrus
	trace.glyphr.fonts   Debug | Info | Error
	app-key              folder name within the user's cache directory
	render.size          height of rendered text, e.g. 32px or 24pt
	render.sdf           distance field scale, 1 = no distance field

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load, file path or font name")
	size := flag.String("size", "", "Height of rendered text, e.g. 32, 32px or 24pt")
	confFile := flag.String("config", "", "Configuration file (NestedText)")
	flag.Parse()

	// set up configuration and logging
	conf, err := loadConfiguration(*confFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *tlevel != "" {
		conf.Set("trace.glyphr.fonts", *tlevel)
		conf.Set("trace.glyphr.resources", *tlevel)
	}
	if *size != "" {
		conf.Set("render.size", *size)
	}
	if err := initTracing(conf); err != nil {
		pterm.Error.Printfln("error configuring tracing: %v", err)
		os.Exit(2)
	}
	pterm.Info.Println("Welcome to the TrueType CLI") // colored welcome message
	tracer().Infof("Trace level is %s", tracer().GetTraceLevel())
	//
	// set up REPL
	repl, err := readline.New("tt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := NewIntp(conf)
	intp.repl = repl
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		pterm.Error.Println(err.Error())
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadConfiguration reads 'glyphr.nt' from the standard configuration locations,
// then the file given with flag -config, if any.
func loadConfiguration(path string) (*koanfadapter.KConf, error) {
	conf := koanfadapter.New(koanf.New("."), "glyphr", []string{"nt"})
	conf.Set("app-key", "glyphr")
	conf.Set("render.size", "32px")
	conf.Set("render.sdf", 1)
	conf.Set("trace.glyphr.fonts", "Info")
	conf.InitDefaults() // sets tracing.adapter and loads glyphr.nt
	if path != "" {
		if err := conf.Koanf().Load(file.Provider(path), koanfadapter.Parser()); err != nil {
			return nil, fmt.Errorf("cannot load configuration %s: %w", path, err)
		}
	}
	return conf, nil
}

// initTracing installs the tracing adapter named by 'tracing.adapter'.
func initTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
