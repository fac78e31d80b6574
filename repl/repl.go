// Package repl is the interactive terminal editor of a session.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/render"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/search"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/session"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

var errUsage = errors.New("usage")

type command struct {
	name  string
	args  string
	help  string
	run   func(h *Handler, args []string) error
	edits bool
}

// commands is filled in init: help refers to it.
var commands []command

func init() {
	commands = []command{
		{name: "show", args: "[n]", help: "show the sentence in focus or sentence n", run: (*Handler).show},
		{name: "tree", help: "show the dependency tree", run: (*Handler).tree},
		{name: "format", help: "cycle table, tree and text views", run: (*Handler).format},
		{name: "next", help: "next sentence", run: (*Handler).next},
		{name: "prev", help: "previous sentence", run: (*Handler).prev},
		{name: "goto", args: "<n>", help: "go to sentence n", run: (*Handler).show},
		{name: "head", args: "<word> <head>", help: "attach word to head, 0 is the root", run: (*Handler).head, edits: true},
		{name: "rel", args: "<word> <relation>", help: "set the relation of a word", run: (*Handler).rel, edits: true},
		{name: "split", args: "<k>", help: "split the sentence after word k", run: (*Handler).split, edits: true},
		{name: "merge", args: "[sentence]", help: "append the next (or given) sentence", run: (*Handler).merge, edits: true},
		{name: "forms", args: "<word>", help: "list the forms of a word", run: (*Handler).forms},
		{name: "form", args: "<word> <lemma> field=value...", help: "create a form, f.ex. pos=noun number=sg", run: (*Handler).form, edits: true},
		{name: "activate", args: "<word> <i>", help: "show form i, 0 is the document form", run: (*Handler).activate, edits: true},
		{name: "delform", args: "<word> <i>", help: "delete form i, 0 clears the document form", run: (*Handler).delform, edits: true},
		{name: "lookup", args: "<word>", help: "ask the morphology service for forms", run: (*Handler).lookup},
		{name: "undo", help: "undo the last edit", run: (*Handler).undo},
		{name: "redo", help: "redo the last undone edit", run: (*Handler).redo},
		{name: "save", help: "write the corpus", run: (*Handler).save},
		{name: "find", args: "<lemma>", help: "find the words of a lemma", run: (*Handler).find},
		{name: "help", help: "list the commands", run: (*Handler).help},
		{name: "quit", help: "leave, quit! discards unsaved edits", run: (*Handler).quit},
	}
}

type Handler struct {
	Session  *session.Session
	Renderer *render.Renderer

	// Save writes the corpus. Nil disables the save command.
	Save func(c *tb.Corpus) error

	// Search finds lemmas. Nil disables the find command.
	Search *search.Search

	Out io.Writer
}

func NewHandler(s *session.Session, r *render.Renderer, out io.Writer) *Handler {
	return &Handler{Session: s, Renderer: r, Out: out}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Out, "🔑 Ctrl+L: clear, help, quit")
	h.Session.Subscribe(h.Renderer.Observer(h.Session))
	_ = h.show(nil)

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      ✍  ", h.completer(),
			prompt.OptionTitle("treebank edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if strings.TrimSpace(in) == "" {
			continue
		}
		history = append(history, in)

		err := h.Exec(in)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
		}
	}
}

// Exec runs one command line.
func (h *Handler) Exec(in string) error {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return nil
	}

	name := tokens[0]
	if name == "quit!" {
		return ErrQuit
	}
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if c.edits && h.Session.Len() == 0 {
			return errors.New("the corpus has no sentences")
		}
		err := c.run(h, tokens[1:])
		if errors.Is(err, errUsage) {
			return fmt.Errorf("usage: %s %s", c.name, c.args)
		}
		return err
	}
	return fmt.Errorf("unknown command %q, try help", name)
}

func (h *Handler) current() (tb.Sentence, error) {
	st, _, ok := h.Session.Current()
	if !ok {
		return st, errors.New("the corpus has no sentences")
	}
	return st, nil
}

func (h *Handler) show(args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		if err := h.Session.Select(n - 1); err != nil {
			return err
		}
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	h.Renderer.Sentence(&st)
	return nil
}

func (h *Handler) tree([]string) error {
	st, err := h.current()
	if err != nil {
		return err
	}
	format := h.Renderer.Format
	h.Renderer.Format = "tree"
	h.Renderer.Sentence(&st)
	h.Renderer.Format = format
	return nil
}

func (h *Handler) format([]string) error {
	h.Renderer.NextFormat()
	fmt.Fprintf(h.Out, "format %s\n", h.Renderer.Format)
	return h.show(nil)
}

func (h *Handler) next([]string) error {
	if !h.Session.Next() {
		return errors.New("last sentence")
	}
	return h.show(nil)
}

func (h *Handler) prev([]string) error {
	if !h.Session.Prev() {
		return errors.New("first sentence")
	}
	return h.show(nil)
}

func (h *Handler) head(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	_, err = h.Session.ReassignHead(st.ID, args[0], args[1])
	return err
}

func (h *Handler) rel(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	_, err = h.Session.SetRelation(st.ID, args[0], relation(args[1]))
	return err
}

// relation spells rel the way the label vocabulary does ("auxp" is AuxP).
func relation(rel string) string {
	for _, r := range tb.Relations() {
		if strings.EqualFold(r, rel) {
			return r
		}
	}
	return rel
}

func (h *Handler) split(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	_, err = h.Session.Split(st.ID, k)
	return err
}

func (h *Handler) merge(args []string) error {
	st, err := h.current()
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
		_, err = h.Session.MergeNext(st.ID)
	case 1:
		_, err = h.Session.Merge(st.ID, args[0])
	default:
		return errUsage
	}
	return err
}

func (h *Handler) word(id string) (*tb.Word, string, error) {
	st, err := h.current()
	if err != nil {
		return nil, "", err
	}
	w, err := st.Word(id)
	if err != nil {
		return nil, "", err
	}
	return w, st.ID, nil
}

func (h *Handler) forms(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	w, _, err := h.word(args[0])
	if err != nil {
		return err
	}
	h.Renderer.Forms(w)
	return nil
}

func (h *Handler) form(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	_, sid, err := h.word(args[0])
	if err != nil {
		return err
	}

	m := map[string]string{}
	for _, kv := range args[2:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return errUsage
		}
		m[k] = v
	}
	fields, err := postag.FromMap(m)
	if err != nil {
		return err
	}

	_, err = h.Session.CreateForm(sid, args[0], args[1], fields)
	return err
}

// formIndex maps the displayed form number to a form index: 0 is the
// document form, 1 the first candidate.
func formIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errUsage
	}
	return n - 1, nil
}

func (h *Handler) activate(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	i, err := formIndex(args[1])
	if err != nil {
		return err
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	_, err = h.Session.ActivateForm(st.ID, args[0], i)
	return err
}

func (h *Handler) delform(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	i, err := formIndex(args[1])
	if err != nil {
		return err
	}
	st, err := h.current()
	if err != nil {
		return err
	}
	_, err = h.Session.DeleteForm(st.ID, args[0], i)
	return err
}

func (h *Handler) lookup(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	_, sid, err := h.word(args[0])
	if err != nil {
		return err
	}
	n, err := h.Session.LookupForms(context.Background(), sid, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(h.Out, "%d new forms\n", n)
	return h.forms(args)
}

func (h *Handler) undo([]string) error {
	if !h.Session.Undo() {
		return errors.New("nothing to undo")
	}
	return nil
}

func (h *Handler) redo([]string) error {
	if !h.Session.Redo() {
		return errors.New("nothing to redo")
	}
	return nil
}

func (h *Handler) save([]string) error {
	if h.Save == nil {
		return errors.New("no place to save to")
	}
	if err := h.Save(h.Session.Corpus()); err != nil {
		return err
	}
	h.Session.MarkSaved()
	fmt.Fprintln(h.Out, "saved")
	return nil
}

func (h *Handler) find(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if h.Search == nil {
		return errors.New("no repository to search")
	}
	n := 0
	err := h.Search.Lemma(args[0], func(m search.Match) error {
		h.Renderer.Match(m)
		n++
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(h.Out, "%d words\n", n)
	return nil
}

func (h *Handler) help([]string) error {
	for _, c := range commands {
		fmt.Fprintf(h.Out, "%-9s %-28s %s\n", c.name, c.args, c.help)
	}
	return nil
}

func (h *Handler) quit([]string) error {
	if h.Session.Dirty() {
		return errors.New("unsaved edits: save, or quit! to discard them")
	}
	return ErrQuit
}
