package file

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const DefaultRoot = "treebank"

// Build serializes c. Words carry their displayed lemma and postag followed by
// the attributes kept from the source document.
func Build(c *tb.Corpus) []byte {
	var b bytes.Buffer

	root := c.Root
	if root == "" {
		root = DefaultRoot
	}

	b.WriteString(xml.Header)
	b.WriteString("<" + root)
	writeAttrs(&b, c.RootAttrs)
	b.WriteString(">\n")

	for i := range c.Sentences {
		s := &c.Sentences[i]
		b.WriteString("  <sentence")
		writeAttr(&b, "id", s.ID)
		writeAttrs(&b, s.Attrs)
		b.WriteString(">\n")

		for j := range s.Words {
			w := &s.Words[j]
			lemma, postag := w.Display()

			b.WriteString("    <word")
			writeAttr(&b, "id", w.ID)
			writeAttr(&b, "form", w.Form)
			writeAttr(&b, "lemma", lemma)
			writeAttr(&b, "postag", postag)
			writeAttr(&b, "relation", w.Relation)
			writeAttr(&b, "head", w.Head)
			writeAttrs(&b, w.Attrs)
			b.WriteString("/>\n")
		}
		b.WriteString("  </sentence>\n")
	}

	b.WriteString("</" + root + ">\n")
	return b.Bytes()
}

func writeAttrs(b *bytes.Buffer, attrs []tb.Attr) {
	for _, a := range attrs {
		writeAttr(b, a.Name, a.Value)
	}
}

func writeAttr(b *bytes.Buffer, name, value string) {
	b.WriteString(" " + name + `="`)
	// EscapeText only fails when the writer does
	_ = xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}

// Write serializes c to w.
func Write(w io.Writer, c *tb.Corpus) error {
	_, err := w.Write(Build(c))
	return err
}

// Load parses a document and validates it. A document that breaks the
// treebank schema is rejected as a whole.
func Load(r io.Reader) (*tb.Corpus, error) {
	c, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := tb.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadCorpus loads the document at path.
func ReadCorpus(path string) (*tb.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// WriteCorpus writes c to path, replacing the file.
func WriteCorpus(path string, c *tb.Corpus) error {
	return os.WriteFile(path, Build(c), 0o644)
}
