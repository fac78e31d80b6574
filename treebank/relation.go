package treebank

import (
	"strings"
)

// RelationUnset is the label of a word whose relation was not annotated yet.
const RelationUnset = "---"

var baseRelations = []string{
	"PRED", "SBJ", "OBJ", "ATR", "ADV", "ATV", "AtvV", "PNOM", "OCOMP",
	"COORD", "APOS", "ExD",
	"AuxP", "AuxC", "AuxR", "AuxV", "AuxX", "AuxG", "AuxK", "AuxY", "AuxZ",
}

var relationSuffixes = []string{"CO", "AP"}

// BaseRelations returns the relation labels without suffixes.
func BaseRelations() []string {
	out := make([]string, len(baseRelations))
	copy(out, baseRelations)
	return out
}

// Relations returns every valid relation label, the unset label first.
func Relations() []string {
	out := []string{RelationUnset}
	for _, b := range baseRelations {
		out = append(out, b)
		for _, s1 := range relationSuffixes {
			out = append(out, b+"_"+s1)
		}
		for _, s1 := range relationSuffixes {
			for _, s2 := range relationSuffixes {
				if s1 != s2 {
					out = append(out, b+"_"+s1+"_"+s2)
				}
			}
		}
	}
	return out
}

// ValidRelation reports whether rel is "---", a base relation, or a base
// relation followed by one or two distinct suffixes from {CO, AP}.
func ValidRelation(rel string) bool {
	if rel == RelationUnset {
		return true
	}

	parts := strings.Split(rel, "_")
	if len(parts) > 3 || !isBaseRelation(parts[0]) {
		return false
	}

	seen := map[string]bool{}
	for _, p := range parts[1:] {
		if !isSuffix(p) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

func isBaseRelation(s string) bool {
	for _, b := range baseRelations {
		if b == s {
			return true
		}
	}
	return false
}

func isSuffix(s string) bool {
	for _, x := range relationSuffixes {
		if x == s {
			return true
		}
	}
	return false
}
