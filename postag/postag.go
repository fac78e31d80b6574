// Package postag composes and parses the fixed-width morphological tags of
// the treebank: nine positional slots, unused slots filled with "-".
package postag

import (
	"errors"
	"fmt"
	"strings"
)

// Len is the width of a postag.
const Len = 9

// Empty fills a slot that carries no value.
const Empty = "-"

type Slot int

const (
	SlotPOS Slot = iota
	SlotPerson
	SlotNumber
	SlotTense
	SlotMood
	SlotVoice
	SlotGender
	SlotCase
	SlotDegree
)

var slotNames = [Len]string{"pos", "person", "number", "tense", "mood", "voice", "gender", "case", "degree"}

func (s Slot) String() string {
	if s < 0 || int(s) >= Len {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// SlotByName returns the slot for a field name such as "case".
func SlotByName(name string) (Slot, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}

// Part of speech codes
const (
	Noun         = "n"
	Verb         = "v"
	Adjective    = "a"
	Adverb       = "d"
	Article      = "l"
	Particle     = "g"
	Conjunction  = "c"
	Adposition   = "r"
	Pronoun      = "p"
	Numeral      = "m"
	Interjection = "i"
	Exclamation  = "e"
	Punctuation  = "u"
	Irregular    = "x"
)

// Moods that change which slots a verb uses.
const (
	MoodInfinitive = "n"
	MoodParticiple = "p"
)

var (
	ErrLength      = errors.New("postag must have 9 characters")
	ErrUnknownPOS  = errors.New("unknown part of speech")
	ErrSlotValue   = errors.New("invalid value for slot")
	ErrUnusedSlot  = errors.New("slot not used by part of speech")
	ErrUnknownSlot = errors.New("unknown field")
)

// alphabet lists the single-letter values accepted in each slot.
var alphabet = [Len]string{
	SlotPOS:    "nvadlgcrpmieux",
	SlotPerson: "123",
	SlotNumber: "spd",
	SlotTense:  "pirltfa",
	SlotMood:   "isonmpdgu",
	SlotVoice:  "apme",
	SlotGender: "mfnc",
	SlotCase:   "ngdavlb",
	SlotDegree: "pcs",
}

// Fields is a postag spread over its slots. An empty string means the slot
// is unset.
type Fields struct {
	POS    string `json:"pos,omitempty"`
	Person string `json:"person,omitempty"`
	Number string `json:"number,omitempty"`
	Tense  string `json:"tense,omitempty"`
	Mood   string `json:"mood,omitempty"`
	Voice  string `json:"voice,omitempty"`
	Gender string `json:"gender,omitempty"`
	Case   string `json:"case,omitempty"`
	Degree string `json:"degree,omitempty"`
}

// Get returns the value of a slot.
func (f Fields) Get(s Slot) string {
	switch s {
	case SlotPOS:
		return f.POS
	case SlotPerson:
		return f.Person
	case SlotNumber:
		return f.Number
	case SlotTense:
		return f.Tense
	case SlotMood:
		return f.Mood
	case SlotVoice:
		return f.Voice
	case SlotGender:
		return f.Gender
	case SlotCase:
		return f.Case
	case SlotDegree:
		return f.Degree
	}
	return ""
}

// Set assigns the value of a slot.
func (f *Fields) Set(s Slot, v string) {
	switch s {
	case SlotPOS:
		f.POS = v
	case SlotPerson:
		f.Person = v
	case SlotNumber:
		f.Number = v
	case SlotTense:
		f.Tense = v
	case SlotMood:
		f.Mood = v
	case SlotVoice:
		f.Voice = v
	case SlotGender:
		f.Gender = v
	case SlotCase:
		f.Case = v
	case SlotDegree:
		f.Degree = v
	}
}

// Map returns the set slots keyed by field name.
func (f Fields) Map() map[string]string {
	m := map[string]string{}
	for i := 0; i < Len; i++ {
		if v := f.Get(Slot(i)); v != "" {
			m[slotNames[i]] = v
		}
	}
	return m
}

// FromMap builds Fields from field names to values. Values go through
// Normalize, so "singular" and "sg" are accepted for number.
func FromMap(m map[string]string) (Fields, error) {
	var f Fields
	for k, v := range m {
		s, ok := SlotByName(k)
		if !ok {
			return Fields{}, fmt.Errorf("%w: %q", ErrUnknownSlot, k)
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		n, ok := Normalize(s, v)
		if !ok {
			return Fields{}, fmt.Errorf("%w %s: %q", ErrSlotValue, s, v)
		}
		f.Set(s, n)
	}
	return f, nil
}

// Slots returns the slots a part of speech fills, besides the POS slot.
// Verbs fill gender and case only as participles.
func Slots(pos, mood string) []Slot {
	switch pos {
	case Verb:
		slots := []Slot{SlotPerson, SlotNumber, SlotTense, SlotMood, SlotVoice}
		if mood == MoodParticiple {
			slots = append(slots, SlotGender, SlotCase)
		}
		return slots
	case Noun, Article, Numeral:
		return []Slot{SlotNumber, SlotGender, SlotCase}
	case Pronoun:
		return []Slot{SlotPerson, SlotNumber, SlotGender, SlotCase}
	case Adjective:
		return []Slot{SlotNumber, SlotGender, SlotCase, SlotDegree}
	case Adverb:
		return []Slot{SlotDegree}
	}
	return nil
}

// Required returns the slots that must be set for a new form of f.POS.
func Required(f Fields) []Slot {
	switch f.POS {
	case Verb:
		switch f.Mood {
		case MoodInfinitive:
			return []Slot{SlotTense, SlotVoice}
		case MoodParticiple:
			return []Slot{SlotNumber, SlotTense, SlotVoice, SlotGender, SlotCase}
		}
		return []Slot{SlotPerson, SlotNumber, SlotTense, SlotVoice}
	case Noun, Article, Numeral:
		return []Slot{SlotNumber, SlotGender, SlotCase}
	case Pronoun:
		return []Slot{SlotPerson, SlotNumber, SlotGender, SlotCase}
	case Adjective:
		return []Slot{SlotNumber, SlotGender, SlotCase, SlotDegree}
	case Adverb:
		return []Slot{SlotDegree}
	}
	return nil
}

// Missing returns the required slots of f that are unset, POS included.
func Missing(f Fields) []Slot {
	if f.POS == "" {
		return []Slot{SlotPOS}
	}
	var out []Slot
	for _, s := range Required(f) {
		if f.Get(s) == "" {
			out = append(out, s)
		}
	}
	return out
}

// Compose builds the postag of f. Every set value must belong to its slot's
// alphabet and to a slot the part of speech uses.
func Compose(f Fields) (string, error) {
	if !validValue(SlotPOS, f.POS) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPOS, f.POS)
	}

	used := map[Slot]bool{}
	for _, s := range Slots(f.POS, f.Mood) {
		used[s] = true
	}

	b := []byte(strings.Repeat(Empty, Len))
	b[SlotPOS] = f.POS[0]
	for i := 1; i < Len; i++ {
		s := Slot(i)
		v := f.Get(s)
		if v == "" || v == Empty {
			continue
		}
		if !validValue(s, v) {
			return "", fmt.Errorf("%w %s: %q", ErrSlotValue, s, v)
		}
		if !used[s] {
			return "", fmt.Errorf("%w %s: %s", ErrUnusedSlot, f.POS, s)
		}
		b[s] = v[0]
	}
	return string(b), nil
}

// ComposeLoose builds a postag from whatever f carries that fits, dropping
// invalid values and slots the part of speech does not use.
func ComposeLoose(f Fields) string {
	b := []byte(strings.Repeat(Empty, Len))
	if !validValue(SlotPOS, f.POS) {
		return string(b)
	}
	b[SlotPOS] = f.POS[0]
	for _, s := range Slots(f.POS, f.Mood) {
		if v := f.Get(s); validValue(s, v) {
			b[s] = v[0]
		}
	}
	return string(b)
}

// Parse spreads a postag over its slots. "-" slots come back unset.
func Parse(tag string) (Fields, error) {
	if len(tag) != Len {
		return Fields{}, fmt.Errorf("%w: %q", ErrLength, tag)
	}
	if !Valid(tag) {
		return Fields{}, fmt.Errorf("%w: %q", ErrSlotValue, tag)
	}

	var f Fields
	for i := 0; i < Len; i++ {
		c := tag[i : i+1]
		if c == Empty {
			continue
		}
		f.Set(Slot(i), c)
	}
	return f, nil
}

// Valid reports whether tag is nine characters of [a-z1-3-] with a known
// part of speech (or "-") in the first position.
func Valid(tag string) bool {
	if len(tag) != Len {
		return false
	}
	for i := 0; i < Len; i++ {
		c := tag[i]
		if !(c >= 'a' && c <= 'z') && !(c >= '1' && c <= '3') && c != '-' {
			return false
		}
	}
	return tag[0] == '-' || strings.IndexByte(alphabet[SlotPOS], tag[0]) >= 0
}

func validValue(s Slot, v string) bool {
	return len(v) == 1 && v != Empty && strings.Contains(alphabet[s], v)
}
