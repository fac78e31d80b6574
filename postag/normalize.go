package postag

import (
	"strings"
)

// vocabulary maps the spellings analyzers use for a value to its code.
// The first spelling of each entry is its display label.
var vocabulary = [Len]map[string][]string{
	SlotPOS: {
		Noun:         {"noun", "n", "subst", "substantive"},
		Verb:         {"verb", "v", "vb"},
		Adjective:    {"adjective", "a", "adj"},
		Adverb:       {"adverb", "d", "adv"},
		Article:      {"article", "l", "art"},
		Particle:     {"particle", "g", "part", "partic"},
		Conjunction:  {"conjunction", "c", "conj"},
		Adposition:   {"adposition", "r", "preposition", "prep", "adp"},
		Pronoun:      {"pronoun", "p", "pron"},
		Numeral:      {"numeral", "m", "num"},
		Interjection: {"interjection", "i", "interj"},
		Exclamation:  {"exclamation", "e", "excl"},
		Punctuation:  {"punctuation", "u", "punct"},
		Irregular:    {"irregular", "x"},
	},
	SlotPerson: {
		"1": {"1st", "1", "first", "first person"},
		"2": {"2nd", "2", "second", "second person"},
		"3": {"3rd", "3", "third", "third person"},
	},
	SlotNumber: {
		"s": {"singular", "s", "sg", "sing"},
		"p": {"plural", "p", "pl", "plur"},
		"d": {"dual", "d", "du"},
	},
	SlotTense: {
		"p": {"present", "p", "pres", "pr"},
		"i": {"imperfect", "i", "imperf", "impf"},
		"r": {"perfect", "r", "perf", "pf"},
		"l": {"pluperfect", "l", "plupf", "plup", "plpf"},
		"t": {"future perfect", "t", "futperf", "futurperfect", "futpf"},
		"f": {"future", "f", "fut"},
		"a": {"aorist", "a", "aor"},
	},
	SlotMood: {
		"i": {"indicative", "i", "ind", "indic"},
		"s": {"subjunctive", "s", "subj"},
		"o": {"optative", "o", "opt"},
		"n": {"infinitive", "n", "inf"},
		"m": {"imperative", "m", "imp", "imperat"},
		"p": {"participle", "p", "part", "ptcp"},
		"d": {"gerund", "d", "ger"},
		"g": {"gerundive", "g", "gerv"},
		"u": {"supine", "u", "sup"},
	},
	SlotVoice: {
		"a": {"active", "a", "act"},
		"p": {"passive", "p", "pass"},
		"m": {"middle", "m", "mid"},
		"e": {"medio-passive", "e", "mediopassive", "mp", "mid/pass", "middle-passive"},
	},
	SlotGender: {
		"m": {"masculine", "m", "masc"},
		"f": {"feminine", "f", "fem"},
		"n": {"neuter", "n", "neut"},
		"c": {"common", "c", "comm", "masculine feminine"},
	},
	SlotCase: {
		"n": {"nominative", "n", "nom"},
		"g": {"genitive", "g", "gen"},
		"d": {"dative", "d", "dat"},
		"a": {"accusative", "a", "acc"},
		"v": {"vocative", "v", "voc"},
		"l": {"locative", "l", "loc"},
		"b": {"ablative", "b", "abl"},
	},
	SlotDegree: {
		"p": {"positive", "p", "pos"},
		"c": {"comparative", "c", "comp"},
		"s": {"superlative", "s", "superl", "sup"},
	},
}

// Normalize maps a loosely spelled value of a slot ("sg", "Singular",
// "s") to its single-letter code.
func Normalize(s Slot, raw string) (string, bool) {
	if s < 0 || int(s) >= Len {
		return "", false
	}
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimSuffix(v, ".")
	if v == "" || v == Empty {
		return "", false
	}
	for code, spellings := range vocabulary[s] {
		for _, sp := range spellings {
			if sp == v {
				return code, true
			}
		}
	}
	return "", false
}

// Label returns the display label of a slot value, or the value itself.
func Label(s Slot, code string) string {
	if s < 0 || int(s) >= Len {
		return code
	}
	if sp, ok := vocabulary[s][code]; ok {
		return sp[0]
	}
	return code
}

// Describe spells out a postag, f.ex. "verb 3rd singular present indicative
// active". Invalid tags are returned unchanged.
func Describe(tag string) string {
	f, err := Parse(tag)
	if err != nil || f.POS == "" {
		return tag
	}
	parts := []string{Label(SlotPOS, f.POS)}
	for i := 1; i < Len; i++ {
		if v := f.Get(Slot(i)); v != "" {
			parts = append(parts, Label(Slot(i), v))
		}
	}
	return strings.Join(parts, " ")
}
