package morph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Config configures a Client.
type Config struct {
	// URL is the analysis endpoint, f.ex.
	// "https://morph.alpheios.net/api/v1/analysis/word".
	URL string `yaml:"url"`

	// Engine selects the analyzer behind the service ("morpheusgrc").
	Engine string `yaml:"engine"`

	// Timeout per request. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`

	UserAgent string `yaml:"-"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "treebank/1.0 (morphology lookup)"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// maxBody caps the size of a service answer.
const maxBody = 5 * 1024 * 1024

// Client queries an Alpheios style morphology service over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ Analyzer = (*Client)(nil)

func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Analyze requests the analyses of form. A form the service does not know
// yields no analyses and no error.
func (c *Client) Analyze(ctx context.Context, form, lang string) ([]Analysis, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid morphology URL: %w", err)
	}
	q := u.Query()
	q.Set("word", form)
	q.Set("lang", lang)
	if c.cfg.Engine != "" {
		q.Set("engine", c.cfg.Engine)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("morphology service: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransient, err)
	}

	analyses, err := Decode(body)
	if err != nil {
		return nil, err
	}

	c.cfg.Logger.Debug("morph: analyzed", "form", form, "lang", lang, "analyses", len(analyses))
	return analyses, nil
}

// Decode reads the JSON answer of the service. Annotation bodies, dictionary
// entries and inflections may each be a single object or an array, and
// values may be plain strings or {"$": "..."} objects.
func Decode(data []byte) ([]Analysis, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var env struct {
		RDF struct {
			Annotation struct {
				Body json.RawMessage `json:"Body"`
			} `json:"Annotation"`
		} `json:"RDF"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode morphology answer: %w", err)
	}

	bodies, err := many[body](env.RDF.Annotation.Body)
	if err != nil {
		return nil, fmt.Errorf("decode annotation body: %w", err)
	}

	var out []Analysis
	for _, b := range bodies {
		dicts, err := many[dict](b.Rest.Entry.Dict)
		if err != nil {
			return nil, fmt.Errorf("decode dict: %w", err)
		}
		infls, err := many[infl](b.Rest.Entry.Infl)
		if err != nil {
			return nil, fmt.Errorf("decode infl: %w", err)
		}

		var d dict
		if len(dicts) > 0 {
			d = dicts[0]
		}
		if d.Hdwd == "" {
			continue
		}

		if len(infls) == 0 {
			out = append(out, Analysis{Lemma: string(d.Hdwd), Fields: compact(map[string]string{"pos": string(d.Pofs)})})
			continue
		}
		for _, in := range infls {
			pos := in.Pofs
			if pos == "" {
				pos = d.Pofs
			}
			out = append(out, Analysis{
				Lemma: string(d.Hdwd),
				Fields: compact(map[string]string{
					"pos":    string(pos),
					"person": string(in.Pers),
					"number": string(in.Num),
					"tense":  string(in.Tense),
					"mood":   string(in.Mood),
					"voice":  string(in.Voice),
					"gender": string(in.Gend),
					"case":   string(in.Case),
					"degree": string(in.Comp),
				}),
			})
		}
	}
	return out, nil
}

type body struct {
	Rest struct {
		Entry struct {
			Dict json.RawMessage `json:"dict"`
			Infl json.RawMessage `json:"infl"`
		} `json:"entry"`
	} `json:"rest"`
}

type dict struct {
	Hdwd value `json:"hdwd"`
	Pofs value `json:"pofs"`
}

type infl struct {
	Pofs  value `json:"pofs"`
	Pers  value `json:"pers"`
	Num   value `json:"num"`
	Tense value `json:"tense"`
	Mood  value `json:"mood"`
	Voice value `json:"voice"`
	Gend  value `json:"gend"`
	Case  value `json:"case"`
	Comp  value `json:"comp"`
}

// value is a string that may be encoded as {"$": "..."}.
type value string

func (v *value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = value(s)
		return nil
	}
	var o struct {
		Text json.RawMessage `json:"$"`
	}
	if err := json.Unmarshal(b, &o); err != nil {
		// numbers, arrays and the like carry nothing we use
		return nil
	}
	if err := json.Unmarshal(o.Text, &s); err == nil {
		*v = value(s)
	}
	return nil
}

// many decodes raw as a list of T, accepting a single object as a list of
// one.
func many[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

func compact(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
