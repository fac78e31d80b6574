package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/search"
)

func findCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "find the words of a lemma in the repository",
		ArgsUsage: "LEMMA",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "doc", Usage: "search only the document `NAME`"},
			&cli.IntFlag{Name: "limit", Usage: "stop after `N` words"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("find needs one lemma")
			}
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			repo, err := e.repository()
			if err != nil {
				return err
			}
			srch := search.New(repo)
			if doc := c.String("doc"); doc != "" {
				srch.WithDoc(doc)
			}

			r := e.renderer()
			limit := c.Int("limit")
			n := 0
			err = srch.Lemma(c.Args().First(), func(m search.Match) error {
				if limit > 0 && n >= limit {
					return errLimit
				}
				r.Match(m)
				n++
				return nil
			})
			if err != nil && !errors.Is(err, errLimit) {
				return err
			}
			e.logger.Debug("find: done", "lemma", c.Args().First(), "words", n)
			return nil
		},
	}
}

var errLimit = errors.New("limit reached")
