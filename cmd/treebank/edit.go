package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/repl"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/search"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/session"
)

func editCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit a document interactively",
		ArgsUsage: "DOC",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "offline", Usage: "no morphology lookups"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("edit needs one document")
			}
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			src, err := e.source(c.Args().First())
			if err != nil {
				return err
			}
			doc, err := src.Read()
			if err != nil {
				return err
			}

			opts := []session.Option{
				session.WithLogger(e.logger),
				session.WithHistoryLimit(e.cfg.History.Limit),
			}
			if a := e.analyzer(); a != nil && !c.Bool("offline") {
				opts = append(opts, session.WithAnalyzer(a, e.cfg.Morph.Source, e.cfg.Lang))
			}
			sess, err := session.New(doc, opts...)
			if err != nil {
				return err
			}

			hdl := repl.NewHandler(sess, e.renderer(), ui.Out)
			hdl.Save = src.Write
			if src.repo != nil {
				hdl.Search = search.New(src.repo)
			}
			return hdl.Run()
		},
	}
}
