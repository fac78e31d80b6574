package render

import (
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/session"
)

// Observer returns a session observer that reports every change and
// re-renders the sentence in focus.
func (r *Renderer) Observer(s *session.Session) session.Observer {
	return func(ch edit.Change) {
		r.Change(ch)
		if st, _, ok := s.Current(); ok {
			r.Sentence(&st)
		}
	}
}
