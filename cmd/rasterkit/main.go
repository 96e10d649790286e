// rasterkit edits raster images with a small command language.
//
// Usage:
//
//	rasterkit -file script.txt   run a script and exit
//	rasterkit -text              start the interactive prompt
//	rasterkit                    same as -text
//
// Options:
//
//	-file <path>   script to run
//	-text          interactive prompt
//	-preview <m>   terminal preview mode (auto, off, kitty, iterm)
//	-hwz <p>       threshold percent used when saving .hwz files
//	-v             debug output on stderr
//	-version       show version information
//
// Settings are also read from RASTERKIT_* environment variables and an
// optional .env file; flags take precedence.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Fepozopo/rasterkit/pkg/cli"
)

func main() {
	scriptPath := flag.String("file", "", "script file to run")
	interactive := flag.Bool("text", false, "start the interactive prompt")
	previewMode := flag.String("preview", "", "terminal preview mode (auto, off, kitty, iterm)")
	hwzPercent := flag.Int("hwz", -1, "threshold percent (0-100) used when saving .hwz files")
	verbose := flag.Bool("v", false, "debug output on stderr")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rasterkit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Edit raster images with a small command language, either from a\n")
		fmt.Fprintf(os.Stderr, "script (-file) or an interactive prompt (-text, the default).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("rasterkit version %s\n", cli.Version)
		os.Exit(0)
	}
	if flag.NArg() != 0 || (*scriptPath != "" && *interactive) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if *previewMode != "" {
		mode, err := cli.ParsePreviewMode(*previewMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -preview: %v\n", err)
			os.Exit(2)
		}
		cfg.Preview = mode
	}
	if *hwzPercent >= 0 {
		if *hwzPercent > 100 {
			fmt.Fprintf(os.Stderr, "Error: -hwz must be between 0 and 100\n")
			os.Exit(2)
		}
		cfg.HWZPercent = *hwzPercent
	}
	if *verbose {
		cli.EnableDebug()
	}

	if *scriptPath != "" {
		err := cli.RunScriptFile(cfg, *scriptPath, os.Stdout, os.Stderr)
		var se *cli.ScriptError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *scriptPath, err)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := cli.RunCLI(cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
