package cpu

import (
	"maps"
	"slices"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// opcodeNames are the words that may start a line.
var opcodeNames = []string{".endm", ".equ", ".inst", ".macro", MNEMONIC_MOV.String()}

// registerNames are the register names, sorted.
var registerNames = slices.Sorted(maps.Keys(registerMap))

// ErrSuggest annotates an error with the closest known name.
type ErrSuggest struct {
	Err     error
	Suggest string
}

func (err *ErrSuggest) Error() string {
	return f("%v, did you mean '%v'?", err.Err, err.Suggest)
}

func (err *ErrSuggest) Unwrap() error {
	return err.Err
}

// closest returns the name with the smallest edit distance from word.
// Names that would need a complete rewrite are never returned.
func closest(word string, names []string) (name string) {
	wordRunes := []rune(word)
	closestDistance := len(word)

	for _, candidate := range names {
		distance := levenshtein.DistanceForStrings(
			wordRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)
		if distance < closestDistance && distance < len(candidate) {
			name = candidate
			closestDistance = distance
		}
	}

	return
}

// suggest wraps err with the closest of names to word, if there is one.
func suggest(err error, word string, names []string) error {
	name := closest(word, names)
	if len(name) == 0 {
		return err
	}

	return &ErrSuggest{Err: err, Suggest: name}
}
