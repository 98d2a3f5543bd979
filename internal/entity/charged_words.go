package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
)

// ChargedWordSet holds normalized forms of emotionally loaded words.
// It is built once at startup and only read afterwards, so it is safe to share
// between goroutines.
type ChargedWordSet struct {
	words       map[string]struct{}
	fingerprint string
}

// NewChargedWordSet builds a set from already normalized words.
func NewChargedWordSet(words []string) *ChargedWordSet {
	set := &ChargedWordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w == "" {
			continue
		}
		set.words[w] = struct{}{}
	}
	set.fingerprint = fingerprint(set.words)
	return set
}

func fingerprint(words map[string]struct{}) string {
	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, w)
	}
	slices.Sort(sorted)

	h := sha256.New()
	for _, w := range sorted {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Contains reports whether the normalized word is charged.
func (s *ChargedWordSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct charged words.
func (s *ChargedWordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Fingerprint identifies the set's contents: equal sets share it regardless
// of the order words were loaded in. Ratings computed against one set must
// not be reused for another.
func (s *ChargedWordSet) Fingerprint() string {
	if s == nil {
		return ""
	}
	return s.fingerprint
}
