// Package chatbot selects canned fitness answers by keyword scoring.
//
// Each knowledge entry scores one point per keyword found as a substring of
// the lowercased message. The highest scoring entry wins, the first entry to
// reach a score keeps it, and a message that scores zero everywhere gets
// FallbackResponse.
package chatbot

import (
	"fmt"
	"strings"
)

// NoMatch is the MatchResult index used when nothing scored.
const NoMatch = -1

// MatchResult describes the winning entry for one message.
type MatchResult struct {
	Index int // Position in the knowledge base, or NoMatch
	Score int // Number of the winning entry's keywords found in the message
}

// Matched reports whether any entry scored above zero.
func (m MatchResult) Matched() bool {
	return m.Index != NoMatch && m.Score > 0
}

// Responder answers messages from a fixed set of knowledge entries.
// It holds no mutable state and is safe for concurrent use.
type Responder struct {
	entries []KnowledgeEntry
}

var defaultResponder = mustNewResponder(knowledgeBase)

// NewResponder validates entries and returns a Responder over a private copy of them.
func NewResponder(entries []KnowledgeEntry) (*Responder, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	return &Responder{entries: cloneEntries(entries)}, nil
}

func mustNewResponder(entries []KnowledgeEntry) *Responder {
	r, err := NewResponder(entries)
	if err != nil {
		panic(fmt.Sprintf("chatbot: invalid knowledge base: %v", err))
	}
	return r
}

// Default returns the Responder backed by the built-in knowledge base.
func Default() *Responder {
	return defaultResponder
}

// Respond answers message using the built-in knowledge base.
func Respond(message string) string {
	return defaultResponder.Respond(message)
}

// Match scores message against every entry and returns the winner.
func (r *Responder) Match(message string) MatchResult {
	lowerMsg := strings.ToLower(message)

	best := MatchResult{Index: NoMatch, Score: 0}
	for idx, entry := range r.entries {
		score := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowerMsg, keyword) {
				score++
			}
		}
		// Strictly greater: the first entry to reach a score keeps it
		if score > best.Score {
			best = MatchResult{Index: idx, Score: score}
		}
	}
	return best
}

// Respond returns the response of the best matching entry, or FallbackResponse.
func (r *Responder) Respond(message string) string {
	m := r.Match(message)
	if !m.Matched() {
		return FallbackResponse
	}
	return r.entries[m.Index].Response
}

// Entry returns the entry at idx.
func (r *Responder) Entry(idx int) (KnowledgeEntry, bool) {
	if idx < 0 || idx >= len(r.entries) {
		return KnowledgeEntry{}, false
	}
	return cloneEntry(r.entries[idx]), true
}

// Entries returns a copy of the knowledge base in scan order.
func (r *Responder) Entries() []KnowledgeEntry {
	return cloneEntries(r.entries)
}

func validateEntries(entries []KnowledgeEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no entries")
	}
	for i, e := range entries {
		if len(e.Keywords) == 0 {
			return fmt.Errorf("entry %d (%s): no keywords", i, e.Topic)
		}
		if e.Response == "" {
			return fmt.Errorf("entry %d (%s): empty response", i, e.Topic)
		}
		for _, k := range e.Keywords {
			if k == "" {
				return fmt.Errorf("entry %d (%s): empty keyword", i, e.Topic)
			}
			if strings.ToLower(k) != k {
				return fmt.Errorf("entry %d (%s): keyword %q is not lowercase", i, e.Topic, k)
			}
		}
	}
	return nil
}

func cloneEntry(e KnowledgeEntry) KnowledgeEntry {
	return KnowledgeEntry{
		Topic:    e.Topic,
		Keywords: append([]string(nil), e.Keywords...),
		Response: e.Response,
	}
}

func cloneEntries(entries []KnowledgeEntry) []KnowledgeEntry {
	out := make([]KnowledgeEntry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}
