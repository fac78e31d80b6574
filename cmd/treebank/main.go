package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}
	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "treebank: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "treebank",
		Usage:                "edit and query dependency treebanks",
		Version:              BuildTag,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration `FILE`",
				EnvVars: []string{"TREEBANK_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "corpus `PATH`: a directory of XML documents or a SQLite database",
				EnvVars: []string{"TREEBANK_CORPUS"},
			},
			&cli.StringFlag{
				Name:    "storage",
				Usage:   "kind of the corpus, dir or sqlite",
				EnvVars: []string{"TREEBANK_STORAGE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"TREEBANK_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "disable colors",
				EnvVars: []string{"TREEBANK_NO_COLOR", "NO_COLOR"},
			},
		},
		Commands: []*cli.Command{
			validateCommand(ui),
			showCommand(ui),
			statCommand(ui),
			findCommand(ui),
			editCommand(ui),
			serveCommand(ui),
			importCommand(ui),
			exportCommand(ui),
			bashCommand(ui),
			versionCommand(ui),
		},
		// errors are printed once, by main
		ExitErrHandler: func(*cli.Context, error) {},
	}
}
