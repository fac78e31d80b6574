package search

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage/filesystem"
)

const iliad = `<treebank>
  <sentence id="1">
    <word id="1" form="ἄνδρα" lemma="ἀνήρ" postag="n-s---ma-" relation="OBJ" head="2"/>
    <word id="2" form="ἔννεπε" lemma="ἐννέπω" postag="v2spma---" relation="PRED" head="0"/>
  </sentence>
</treebank>`

const odyssey = `<treebank>
  <sentence id="1">
    <word id="1" form="ἀνδρῶν" lemma="ἀνήρ1" postag="n-p---mg-" relation="ATR" head="0"/>
  </sentence>
  <sentence id="2">
    <word id="1" form="πολλῶν" lemma="πολύς" postag="a-p---mg-" relation="ATR" head="2"/>
    <word id="2" form="ἀνδρῶν" lemma="ἀνήρ" postag="n-p---mg-" relation="ATR" head="0"/>
  </sentence>
</treebank>`

func repo(t *testing.T) storage.CorpusRepository {
	t.Helper()
	s, err := filesystem.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for name, doc := range map[string]string{"iliad": iliad, "odyssey": odyssey} {
		c, err := file.Load(strings.NewReader(doc))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Write(name, c); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestLemma(t *testing.T) {
	var got []Match
	err := New(repo(t)).Lemma("ἀνήρ", func(m Match) error {
		got = append(got, m)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d matches: %+v", len(got), got)
	}
	if got[0].Doc != "iliad" || got[2].Doc != "odyssey" || got[2].SentenceID != "2" {
		t.Errorf("matches out of order: %+v", got)
	}
	last := got[2]
	if !reflect.DeepEqual(last.Forms, []string{"πολλῶν", "ἀνδρῶν"}) || last.Index != 1 {
		t.Errorf("context = %v at %d", last.Forms, last.Index)
	}
}

func TestLemmaInOneDocument(t *testing.T) {
	var got []Match
	err := New(repo(t)).WithDoc("iliad").Lemma("ἀνήρ", func(m Match) error {
		got = append(got, m)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Form != "ἄνδρα" || got[0].Index != 0 {
		t.Errorf("matches = %+v", got)
	}

	err = New(repo(t)).WithDoc("thebaid").Lemma("ἀνήρ", func(Match) error { return nil })
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing document: err = %v", err)
	}
}
