// Package render writes sentences, search matches and statistics to a
// terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/search"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/stat"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const (
	Defaultformat = "table"

	formWidth  = 18
	lemmaWidth = 16
)

var (
	Red       = "\033[1;31m"
	Yellow    = "\033[0;33m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"table", "tree", "text"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	// Format determines how a sentence is written
	//
	// table: one line per word with its lemma, postag, relation and head
	// tree: the dependency tree, one indented line per word
	// text: the forms of the sentence on one line
	Format string

	// Describe appends the postag description to table lines.
	Describe bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat}
}

// Sentence writes s in the current format.
func (r *Renderer) Sentence(s *tb.Sentence) {
	switch r.Format {
	case "tree":
		r.tree(s)
	case "text":
		fmt.Fprintf(r.W, "%s %s\n", r.prefix(s.ID), r.text(s, ""))
	default:
		r.table(s)
	}
}

func (r *Renderer) prefix(id string) string {
	return r.color(Grey256, fmt.Sprintf("[%4s]", id))
}

func (r *Renderer) table(s *tb.Sentence) {
	fmt.Fprintf(r.W, "%s %s\n", r.prefix(s.ID), r.text(s, ""))
	for i := range s.Words {
		w := &s.Words[i]
		lemma, tag := w.Display()
		line := fmt.Sprintf("%4s %s %s %-9s %-10s %4s",
			w.ID,
			runewidth.FillRight(runewidth.Truncate(w.Form, formWidth, "…"), formWidth),
			runewidth.FillRight(runewidth.Truncate(lemma, lemmaWidth, "…"), lemmaWidth),
			tag,
			r.relation(w.Relation),
			w.Head,
		)
		if n := len(w.Forms); n > 0 {
			line += fmt.Sprintf(" %d/%d", w.Active+1, n)
		}
		if r.Describe && tag != "" {
			line += "  " + postag.Describe(tag)
		}
		fmt.Fprintln(r.W, strings.TrimRight(line, " "))
	}
}

func (r *Renderer) tree(s *tb.Sentence) {
	fmt.Fprintf(r.W, "%s %s\n", r.prefix(s.ID), r.text(s, ""))
	seen := map[string]bool{}
	var walk func(id, indent string)
	walk = func(id, indent string) {
		children := tb.Children(s, id)
		for i, cid := range children {
			if seen[cid] {
				continue
			}
			seen[cid] = true

			branch, next := "├─ ", "│  "
			if i == len(children)-1 {
				branch, next = "└─ ", "   "
			}
			w, err := s.Word(cid)
			if err != nil {
				continue
			}
			lemma, _ := w.Display()
			fmt.Fprintf(r.W, "%s%s%s %s %s %s\n", indent, branch, cid, r.color(Green256, w.Form), r.relation(w.Relation), r.color(Gray, lemma))
			walk(cid, indent+next)
		}
	}
	fmt.Fprintln(r.W, tb.RootID)
	walk(tb.RootID, "")
}

// text joins the forms of s, highlighting the word mark.
func (r *Renderer) text(s *tb.Sentence, mark string) string {
	forms := make([]string, len(s.Words))
	for i, w := range s.Words {
		forms[i] = w.Form
		if w.ID == mark {
			forms[i] = r.color(Green256, w.Form)
		}
	}
	return strings.Join(forms, " ")
}

func (r *Renderer) relation(rel string) string {
	if rel == tb.RelationUnset {
		return r.color(Red, fmt.Sprintf("%-10s", rel))
	}
	return r.color(Yellow256, fmt.Sprintf("%-10s", rel))
}

func (r *Renderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}

// Match writes a search match on one line, its word highlighted.
func (r *Renderer) Match(m search.Match) {
	forms := make([]string, len(m.Forms))
	for i, f := range m.Forms {
		forms[i] = f
		if i == m.Index {
			forms[i] = r.color(Green256, f)
		}
	}
	title := runewidth.FillRight(runewidth.Truncate(m.Doc, 20, "…"), 20)
	fmt.Fprintf(r.W, "[%s %4s:%-3s] %s\n", r.color(Grey256, title), m.SentenceID, m.WordID, strings.Join(forms, " "))
}

// Change writes a one line summary of an edit.
func (r *Renderer) Change(ch edit.Change) {
	var b strings.Builder
	b.WriteString(r.color(Yellow, ch.Kind.String()))
	if ch.SentenceID != "" {
		fmt.Fprintf(&b, " sentence %s", ch.SentenceID)
	}
	if ch.WordID != "" {
		fmt.Fprintf(&b, " word %s", ch.WordID)
	}
	switch ch.Kind {
	case edit.Reattached, edit.Flipped:
		fmt.Fprintf(&b, " head %s", ch.Head)
	case edit.FormCreated, edit.FormActivated, edit.FormDeleted:
		fmt.Fprintf(&b, " form %d", ch.Form+1)
	case edit.SuggestionsMerged:
		fmt.Fprintf(&b, " %d new", ch.Count)
	}
	fmt.Fprintln(r.W, b.String())
}

// Forms writes the candidate forms of w, the document form first as 0.
func (r *Renderer) Forms(w *tb.Word) {
	mark := func(i int) string {
		if w.Active == i {
			return "*"
		}
		return " "
	}
	fmt.Fprintf(r.W, "%s 0 %-16s %-9s %s\n", mark(tb.NoForm), w.Doc.Lemma, w.Doc.Postag, tb.SourceDocument)
	for i, f := range w.Forms {
		fmt.Fprintf(r.W, "%s %d %-16s %-9s %s\n", mark(i), i+1, f.Lemma, f.Postag, f.Source)
	}
}

func (r *Renderer) Stats(s stat.Stats) {
	fmt.Fprintf(r.W, "Num docs %d, num sentences %d, num words %d, words per sentence %d\n",
		s.NumDocs, s.NumSentences, s.NumWords, s.WordsPerSentenceMean)
	fmt.Fprintf(r.W, "Unlabelled %d, unannotated %d, multi root sentences %d\n",
		s.Unlabelled, s.Unannotated, s.MultiRoot)
	r.counts("relation", s.Relations)
	r.counts("pos", s.POS)
}

func (r *Renderer) counts(title string, m map[string]int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// by count, then by name
	sort.SliceStable(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Fprintf(r.W, "%-9s %-10s %6d\n", title, k, m[k])
	}
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}
