package main

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/render"
)

func showCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the sentences of a document",
		ArgsUsage: "DOC",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.Defaultformat,
				Usage:   "table, tree, text or json",
			},
			&cli.StringFlag{
				Name:    "sentence",
				Aliases: []string{"s"},
				Usage:   "only the sentence with this `ID`",
			},
			&cli.BoolFlag{
				Name:  "describe",
				Usage: "spell out postags in tables",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("show needs one document")
			}
			format := c.String("format")
			if format != "json" && !slices.Contains(render.SupportedFormats(), format) {
				return fmt.Errorf("unknown format %q", format)
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

			r := e.renderer()
			r.Format = format
			r.Describe = c.Bool("describe")
			jr := render.NewJSONRenderer(ui.Out)

			only := c.String("sentence")
			if only != "" && doc.Index(only) < 0 {
				return fmt.Errorf("%s has no sentence %s", src, only)
			}
			for i := range doc.Sentences {
				s := &doc.Sentences[i]
				if only != "" && s.ID != only {
					continue
				}
				if format == "json" {
					if err := jr.Sentence(s, i); err != nil {
						return err
					}
					continue
				}
				r.Sentence(s)
			}
			return nil
		},
	}
}
