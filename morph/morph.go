// Package morph asks an external morphology service for the analyses of a
// word form and turns them into treebank forms.
package morph

import (
	"context"
	"errors"
	"strings"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// ErrTransient marks a lookup that failed for reasons outside the document:
// the service could not be reached or answered with a server error. The
// lookup may be retried.
var ErrTransient = errors.New("morphology service unavailable")

// Analysis is one reading of a word form. Fields holds the values as the
// service spells them, keyed by postag slot name ("pos", "case", ...).
type Analysis struct {
	Lemma  string            `json:"lemma"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Analyzer looks up the analyses of a word form in a language.
type Analyzer interface {
	Analyze(ctx context.Context, form, lang string) ([]Analysis, error)
}

// Forms converts analyses into forms attributed to source. Values are
// normalized and postags composed leniently: a value the postag alphabet
// does not know leaves its slot empty. Duplicates are dropped.
func Forms(analyses []Analysis, source string) []tb.Form {
	var out []tb.Form
	seen := map[tb.Form]bool{}

	for _, a := range analyses {
		lemma := strings.TrimSpace(a.Lemma)
		if lemma == "" {
			continue
		}
		f := tb.Form{Lemma: lemma, Postag: postag.ComposeLoose(fields(a.Fields)), Source: source}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func fields(raw map[string]string) postag.Fields {
	var f postag.Fields

	pos := strings.ToLower(raw["pos"])
	if strings.Contains(pos, "participle") {
		f.POS = postag.Verb
		f.Mood = postag.MoodParticiple
	}

	for k, v := range raw {
		s, ok := postag.SlotByName(k)
		if !ok || f.Get(s) != "" {
			continue
		}
		if code, ok := postag.Normalize(s, v); ok {
			f.Set(s, code)
		}
	}
	return f
}
