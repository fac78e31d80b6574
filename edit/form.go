package edit

import (
	"fmt"
	"strings"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// MissingFieldError lists the morphological fields a new form lacks for its
// part of speech.
type MissingFieldError struct {
	Fields []postag.Slot
}

func (e *MissingFieldError) Error() string {
	names := make([]string, len(e.Fields))
	for i, s := range e.Fields {
		names[i] = s.String()
	}
	return fmt.Sprintf("%s: %s", tb.ErrMissingField, strings.Join(names, ", "))
}

func (e *MissingFieldError) Unwrap() error {
	return tb.ErrMissingField
}

func (e *MissingFieldError) Is(target error) bool {
	return target == tb.ErrPrecondition
}

// CreateForm composes a user form from lemma and fields, appends it to the
// word and makes it active.
func CreateForm(w *tb.Word, lemma string, fields postag.Fields) (Change, error) {
	ch := Change{Kind: NoOp, WordID: w.ID}

	lemma = strings.TrimSpace(lemma)
	if lemma == "" {
		return ch, &tb.PreconditionError{Op: "form", Err: tb.ErrMissingLemma}
	}
	if missing := postag.Missing(fields); len(missing) > 0 {
		return ch, &MissingFieldError{Fields: missing}
	}

	tag, err := postag.Compose(fields)
	if err != nil {
		return ch, &tb.PreconditionError{Op: "form", Err: err, Detail: lemma}
	}

	w.Forms = append(w.Forms, tb.Form{Lemma: lemma, Postag: tag, Source: tb.SourceUser})
	w.Active = len(w.Forms) - 1

	return Change{Kind: FormCreated, WordID: w.ID, Form: w.Active}, nil
}

// ActivateForm selects the form shown for the word. tb.NoForm selects the
// document form.
func ActivateForm(w *tb.Word, i int) (Change, error) {
	if i < tb.NoForm || i >= len(w.Forms) {
		return Change{Kind: NoOp, WordID: w.ID}, formIndexError(w, i)
	}
	w.Active = i
	return Change{Kind: FormActivated, WordID: w.ID, Form: i}, nil
}

// DeleteForm removes form i. Deleting tb.NoForm clears the document lemma
// and postag instead; the document values are not kept anywhere else.
func DeleteForm(w *tb.Word, i int) (Change, error) {
	if i < tb.NoForm || i >= len(w.Forms) {
		return Change{Kind: NoOp, WordID: w.ID}, formIndexError(w, i)
	}

	if i == tb.NoForm {
		w.Doc.Lemma = ""
		w.Doc.Postag = ""
		w.Doc.Set = true
		return Change{Kind: DocumentFormCleared, WordID: w.ID, Form: i}, nil
	}

	w.Forms = append(w.Forms[:i], w.Forms[i+1:]...)
	switch {
	case w.Active == i:
		w.Active = tb.NoForm
	case w.Active > i:
		w.Active--
	}
	if len(w.Forms) == 0 {
		w.Forms = nil
	}
	return Change{Kind: FormDeleted, WordID: w.ID, Form: i}, nil
}

// MergeSuggestions appends the forms the word does not have yet and returns
// how many were added. The active form is left alone.
func MergeSuggestions(w *tb.Word, forms []tb.Form) int {
	n := 0
	for _, f := range forms {
		if f.Lemma == "" || w.HasForm(f.Lemma, f.Postag) {
			continue
		}
		w.Forms = append(w.Forms, f)
		n++
	}
	return n
}

func formIndexError(w *tb.Word, i int) error {
	return &tb.PreconditionError{
		Op:     "form",
		Err:    tb.ErrFormIndex,
		Detail: fmt.Sprintf("word %s has %d forms, got %d", w.ID, len(w.Forms), i),
	}
}
