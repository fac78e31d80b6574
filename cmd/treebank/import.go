package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/config"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "copy every document of a repository into the corpus",
		ArgsUsage: "FROM",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("import needs the repository to copy from")
			}
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			var from Pool
			defer from.Close()
			src, err := NewCorpusRepository(&from, c.Args().First(), config.StorageDir)
			if err != nil {
				return err
			}
			dst, err := e.repository()
			if err != nil {
				return err
			}

			fmt.Fprintf(ui.Out, "Reading docs from %s...\n", c.Args().First())
			n, err := copyDocs(src, dst, ui)
			if err != nil {
				return err
			}
			fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", n, c.Args().First(), e.cfg.CorpusPath)
			return nil
		},
	}
}

func exportCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "copy every document of the corpus into another repository",
		ArgsUsage: "TO",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "storage",
				Value: config.StorageDir,
				Usage: "kind of a new target, dir or sqlite",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("export needs the repository to copy to")
			}
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			src, err := e.repository()
			if err != nil {
				return err
			}
			if c.String("storage") == config.StorageDir {
				if err := os.MkdirAll(c.Args().First(), 0o755); err != nil {
					return err
				}
			}
			var to Pool
			defer to.Close()
			dst, err := NewCorpusRepository(&to, c.Args().First(), c.String("storage"))
			if err != nil {
				return err
			}

			n, err := copyDocs(src, dst, ui)
			if err != nil {
				return err
			}
			fmt.Fprintf(ui.Out, "Successfully exported %d docs from %s to %s\n", n, e.cfg.CorpusPath, c.Args().First())
			return nil
		},
	}
}

// copyDocs writes every document of src to dst, with a progress bar on the
// error stream.
func copyDocs(src storage.CorpusReader, dst storage.CorpusWriter, ui UI) (int, error) {
	if p, ok := src.(storage.Preloader); ok {
		if err := p.Preload(nil); err != nil {
			return 0, err
		}
	}
	docs, err := src.List()
	if err != nil {
		return 0, err
	}

	progress := uiprogress.New()
	progress.Out = ui.Err
	progress.Start()
	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()
	defer progress.Stop()

	count := 0
	for _, meta := range docs {
		doc, err := src.Read(meta.Name)
		if err != nil {
			return count, fmt.Errorf("failed to read doc %s: %w", meta.Name, err)
		}
		if err := dst.Write(meta.Name, doc); err != nil {
			return count, fmt.Errorf("failed to write doc %s: %w", meta.Name, err)
		}
		count++
		bar.Incr()
	}
	return count, nil
}
