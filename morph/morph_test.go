package morph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const logosAnswer = `{"RDF":{"Annotation":{"about":"urn:TuftsMorphologyService:λόγος:morpheusgrc","Body":[
{"rest":{"entry":{
  "infl":{"term":{"lang":"grc","stem":{"$":"λογ"},"suff":{"$":"ος"}},"pofs":{"order":3,"$":"noun"},"case":{"order":7,"$":"nominative"},"gend":{"$":"masculine"},"num":{"$":"singular"}},
  "dict":{"hdwd":{"lang":"grc","$":"λόγος"},"pofs":{"order":3,"$":"noun"}}}}},
{"rest":{"entry":{
  "infl":[
    {"pofs":{"$":"verb"},"pers":{"$":"3rd"},"num":{"$":"singular"},"tense":{"$":"present"},"mood":{"$":"indicative"},"voice":{"$":"active"}},
    {"pofs":{"$":"verb participle"},"num":"plural","tense":"aorist","voice":"middle","gend":"neuter","case":"accusative"}
  ],
  "dict":{"hdwd":{"lang":"grc","$":"λέγω"},"pofs":{"$":"verb"}}}}}
]}}}`

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(logosAnswer))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d analyses: %+v", len(got), got)
	}

	want := Analysis{Lemma: "λόγος", Fields: map[string]string{
		"pos": "noun", "case": "nominative", "gender": "masculine", "number": "singular",
	}}
	if !reflect.DeepEqual(got[0], want) {
		t.Errorf("first analysis = %+v", got[0])
	}
	if got[2].Fields["pos"] != "verb participle" || got[2].Fields["case"] != "accusative" {
		t.Errorf("participle = %+v", got[2])
	}
}

func TestDecodeSingleBodyWithoutInflections(t *testing.T) {
	got, err := Decode([]byte(`{"RDF":{"Annotation":{"Body":{"rest":{"entry":{"dict":{"hdwd":"καί","pofs":"conjunction"}}}}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Analysis{{Lemma: "καί", Fields: map[string]string{"pos": "conjunction"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %+v", got)
	}

	if got, err := Decode(nil); err != nil || got != nil {
		t.Errorf("empty answer = %v, %v", got, err)
	}
	if _, err := Decode([]byte("<html>")); err == nil {
		t.Error("expected an error for a non JSON answer")
	}
}

func TestForms(t *testing.T) {
	analyses, err := Decode([]byte(logosAnswer))
	if err != nil {
		t.Fatal(err)
	}
	analyses = append(analyses, analyses[0], Analysis{Lemma: " "})

	got := Forms(analyses, "morpheusgrc")
	want := []tb.Form{
		{Lemma: "λόγος", Postag: "n-s---mn-", Source: "morpheusgrc"},
		{Lemma: "λέγω", Postag: "v3spia---", Source: "morpheusgrc"},
		{Lemma: "λέγω", Postag: "v-papmna-", Source: "morpheusgrc"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Forms =\n%+v\nwant\n%+v", got, want)
	}
}

func TestClient(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		if r.Header.Get("User-Agent") == "" {
			t.Error("request without User-Agent")
		}
		switch r.URL.Query().Get("word") {
		case "λόγος":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(logosAnswer))
		case "boom":
			http.Error(w, "down", http.StatusBadGateway)
		case "bad":
			http.Error(w, "no", http.StatusBadRequest)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL + "/analysis/word", Engine: "morpheusgrc"})
	ctx := context.Background()

	got, err := c.Analyze(ctx, "λόγος", "grc")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d analyses", len(got))
	}
	if query == "" || !strings.Contains(query, "engine=morpheusgrc") || !strings.Contains(query, "lang=grc") {
		t.Errorf("query = %q", query)
	}

	if got, err := c.Analyze(ctx, "xyz", "grc"); err != nil || got != nil {
		t.Errorf("unknown form = %v, %v", got, err)
	}
	if _, err := c.Analyze(ctx, "boom", "grc"); !errors.Is(err, ErrTransient) {
		t.Errorf("server error: err = %v, want ErrTransient", err)
	}
	_, err = c.Analyze(ctx, "bad", "grc")
	if err == nil || errors.Is(err, ErrTransient) {
		t.Errorf("client error: err = %v", err)
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{URL: url}).Analyze(context.Background(), "λόγος", "grc")
	if !errors.Is(err, ErrTransient) {
		t.Errorf("err = %v, want ErrTransient", err)
	}
}

type countingAnalyzer struct {
	calls int
	err   error
}

func (a *countingAnalyzer) Analyze(_ context.Context, form, _ string) ([]Analysis, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return []Analysis{{Lemma: form}}, nil
}

func TestCache(t *testing.T) {
	next := &countingAnalyzer{}
	c := NewCache(next)
	ctx := context.Background()

	// precomposed and combining spellings of alpha with acute
	if _, err := c.Analyze(ctx, "\u03ac", "grc"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Analyze(ctx, "\u03b1\u0301", "grc"); err != nil {
		t.Fatal(err)
	}
	if next.calls != 1 || c.Len() != 1 {
		t.Errorf("calls = %d, entries = %d; want one lookup", next.calls, c.Len())
	}

	if _, err := c.Analyze(ctx, "\u03ac", "lat"); err != nil {
		t.Fatal(err)
	}
	if next.calls != 2 {
		t.Errorf("languages share cache entries")
	}
}

func TestCacheSkipsFailures(t *testing.T) {
	next := &countingAnalyzer{err: ErrTransient}
	c := NewCache(next)

	for i := 0; i < 2; i++ {
		if _, err := c.Analyze(context.Background(), "λόγος", "grc"); !errors.Is(err, ErrTransient) {
			t.Fatalf("err = %v", err)
		}
	}
	if next.calls != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, entries = %d", next.calls, c.Len())
	}
}
