package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "corpus statistics, of the given documents or the whole repository",
		ArgsUsage: "[DOC...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the statistics as JSON"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			names := c.Args().Slice()
			if len(names) == 0 {
				repo, err := e.repository()
				if err != nil {
					return err
				}
				metas, err := repo.List()
				if err != nil {
					return err
				}
				for _, m := range metas {
					names = append(names, m.Name)
				}
			}

			hdl := stat.NewHandler()
			for _, name := range names {
				src, err := e.source(name)
				if err != nil {
					return err
				}
				doc, err := src.Read()
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", src, err)
				}
				hdl.Aggregate(doc)
			}

			if c.Bool("json") {
				return json.NewEncoder(ui.Out).Encode(hdl.Get())
			}
			e.renderer().Stats(hdl.Get())
			return nil
		},
	}
}
