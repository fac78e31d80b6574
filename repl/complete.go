package repl

import (
	"strings"

	prompt "github.com/c-bata/go-prompt"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

var fieldNames = []string{"pos", "person", "number", "tense", "mood", "voice", "gender", "case", "degree"}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.suggest(in.TextBeforeCursor())
	}
}

func (h *Handler) suggest(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	// Only one character in line
	if befCursor == "" {
		return s
	}

	tokens := strings.Split(befCursor, " ")
	last := tokens[len(tokens)-1]

	if len(tokens) == 1 {
		for _, c := range commands {
			if strings.HasPrefix(c.name, last) {
				s = append(s, prompt.Suggest{Text: c.name, Description: c.help})
			}
		}
		return s
	}

	switch {
	case tokens[0] == "rel" && len(tokens) == 3:
		for _, r := range tb.Relations() {
			if last != "" && strings.HasPrefix(strings.ToUpper(r), strings.ToUpper(last)) {
				s = append(s, prompt.Suggest{Text: r})
			}
		}
	case tokens[0] == "form" && len(tokens) > 3:
		for _, f := range fieldNames {
			if last != "" && strings.HasPrefix(f, last) {
				s = append(s, prompt.Suggest{Text: f + "="})
			}
		}
	case len(tokens) == 2 && wordArg(tokens[0]):
		st, _, ok := h.Session.Current()
		if !ok {
			return s
		}
		for _, w := range st.Words {
			if strings.HasPrefix(w.ID, last) {
				s = append(s, prompt.Suggest{Text: w.ID, Description: w.Form})
			}
		}
	}
	return s
}

func wordArg(cmd string) bool {
	switch cmd {
	case "head", "rel", "forms", "form", "activate", "delform", "lookup":
		return true
	}
	return false
}
