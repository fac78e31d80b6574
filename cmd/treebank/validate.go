package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
)

func validateCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check XML documents against the treebank schema",
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no files given")
			}
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			failed := 0
			for _, path := range c.Args().Slice() {
				doc, err := file.ReadCorpus(path)
				if err != nil {
					failed++
					fmt.Fprintf(ui.Out, "❌ %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(ui.Out, "✔ %s: %d sentences, %d words\n", path, doc.Len(), doc.NumWords())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents are invalid", failed, c.NArg())
			}
			return nil
		},
	}
}
