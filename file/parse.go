// Package file reads and writes treebank XML documents.
package file

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var (
	ErrNoRoot = errors.New("document has no root element")
)

// Parse reads a treebank document. Every <sentence> element is collected
// whatever its depth, and every <word> inside it. Attributes the model does
// not track are kept verbatim, namespaced ones under their declared prefix.
//
// Parse does not validate the result; see Load.
func Parse(r io.Reader) (*tb.Corpus, error) {
	decoder := xml.NewDecoder(r)

	prefixes := map[string]string{xmlNamespace: "xml"}
	var c *tb.Corpus
	var cur *tb.Sentence

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse treebank: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			declare(prefixes, t.Attr)

			if c == nil {
				if t.Name.Local == "sentence" || t.Name.Local == "word" {
					return nil, fmt.Errorf("%w: document starts with <%s>", ErrNoRoot, t.Name.Local)
				}
				c = &tb.Corpus{Root: t.Name.Local, RootAttrs: attrs(prefixes, t.Attr)}
				continue
			}

			switch t.Name.Local {
			case "sentence":
				s := tb.Sentence{}
				for _, a := range attrs(prefixes, t.Attr) {
					if a.Name == "id" {
						s.ID = a.Value
						continue
					}
					s.Attrs = append(s.Attrs, a)
				}
				c.Sentences = append(c.Sentences, s)
				cur = &c.Sentences[len(c.Sentences)-1]

			case "word":
				if cur == nil {
					continue
				}
				cur.Words = append(cur.Words, word(attrs(prefixes, t.Attr)))
			}

		case xml.EndElement:
			if t.Name.Local == "sentence" {
				cur = nil
			}
		}
	}

	if c == nil {
		return nil, ErrNoRoot
	}
	return c, nil
}

func word(attrs []tb.Attr) tb.Word {
	var w tb.Word
	var lemma, postag string

	for _, a := range attrs {
		switch a.Name {
		case "id":
			w.ID = a.Value
		case "form":
			w.Form = a.Value
		case "lemma":
			lemma = a.Value
		case "postag":
			postag = a.Value
		case "head":
			w.Head = a.Value
		case "relation":
			w.Relation = a.Value
		default:
			w.Attrs = append(w.Attrs, a)
		}
	}

	if w.Head == "" {
		w.Head = tb.RootID
	}
	if w.Relation == "" {
		w.Relation = tb.RelationUnset
	}
	w.Active = tb.NoForm
	w.TouchDocument(lemma, postag)
	return w
}

// declare records the namespace prefixes an element declares.
func declare(prefixes map[string]string, attrs []xml.Attr) {
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		}
	}
}

func attrs(prefixes map[string]string, in []xml.Attr) []tb.Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]tb.Attr, 0, len(in))
	for _, a := range in {
		out = append(out, tb.Attr{Name: attrName(prefixes, a.Name), Value: a.Value})
	}
	return out
}

func attrName(prefixes map[string]string, n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if p, ok := prefixes[n.Space]; ok {
		return p + ":" + n.Local
	}
	// undeclared prefixes come through untranslated
	return n.Space + ":" + n.Local
}
