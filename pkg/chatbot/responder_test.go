package chatbot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseFor(t *testing.T, topic string) string {
	t.Helper()
	for _, e := range knowledgeBase {
		if e.Topic == topic {
			return e.Response
		}
	}
	t.Fatalf("no knowledge entry with topic %q", topic)
	return ""
}

func TestRespond_Examples(t *testing.T) {
	tests := []struct {
		name    string
		message string
		topic   string // empty means fallback
		score   int
	}{
		{"greeting", "hi there", "greeting", 1},
		{"muscle gain counts every keyword", "I want to build muscle and gain size", "muscle_gain", 4},
		{"squat", "tell me about squats for my legs", "squat", 2},
		{"no keywords", "xyzzy plugh", "", 0},
		// indian=1, weight_loss=1, diet=2 (food, eat)
		{"highest score beats earlier entries", "what indian food should I eat for weight loss", "diet", 2},
		{"phrase keyword", "any slimming tips?", "weight_loss", 1},
		{"empty message", "", "", 0},
	}

	r := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := FallbackResponse
			if tt.topic != "" {
				want = responseFor(t, tt.topic)
			}
			assert.Equal(t, want, r.Respond(tt.message))
			assert.Equal(t, tt.score, r.Match(tt.message).Score)
		})
	}
}

func TestRespond_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Respond("hello"), Respond("HELLO"))
	assert.Equal(t, responseFor(t, "greeting"), Respond("HeLLo"))
	assert.Equal(t, responseFor(t, "bench_press"), Respond("How do I improve my BENCH PRESS"))
}

func TestRespond_Deterministic(t *testing.T) {
	msg := "I'm tired and want to give up"
	first := Respond(msg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Respond(msg))
	}
	assert.Equal(t, responseFor(t, "motivation"), first)
}

func TestRespond_TieGoesToFirstEntry(t *testing.T) {
	// bench_press (chest) and deadlift (back) both score 1
	assert.Equal(t, responseFor(t, "bench_press"), Respond("chest and back"))
	assert.Equal(t, responseFor(t, "bench_press"), Respond("back and chest"))

	r, err := NewResponder([]KnowledgeEntry{
		{Topic: "a", Keywords: []string{"apple"}, Response: "A"},
		{Topic: "b", Keywords: []string{"banana"}, Response: "B"},
	})
	require.NoError(t, err)

	m := r.Match("banana apple")
	assert.Equal(t, MatchResult{Index: 0, Score: 1}, m)
	assert.Equal(t, "A", r.Respond("banana apple"))
}

func TestRespond_StrictWinnerIndependentOfOrder(t *testing.T) {
	entries := []KnowledgeEntry{
		{Topic: "one", Keywords: []string{"run"}, Response: "ONE"},
		{Topic: "two", Keywords: []string{"swim", "pool"}, Response: "TWO"},
	}
	reversed := []KnowledgeEntry{entries[1], entries[0]}

	fwd, err := NewResponder(entries)
	require.NoError(t, err)
	rev, err := NewResponder(reversed)
	require.NoError(t, err)

	msg := "run then swim in the pool"
	assert.Equal(t, "TWO", fwd.Respond(msg))
	assert.Equal(t, "TWO", rev.Respond(msg))
}

func TestMatch_OverlappingKeywordsScoreIndependently(t *testing.T) {
	r, err := NewResponder([]KnowledgeEntry{
		{Topic: "run", Keywords: []string{"run", "running"}, Response: "RUN"},
	})
	require.NoError(t, err)

	assert.Equal(t, MatchResult{Index: 0, Score: 2}, r.Match("I like running"))
	assert.Equal(t, 2, Default().Match("lose weight, weight loss").Score)
}

func TestMatch_NoMatch(t *testing.T) {
	m := Default().Match("quantum chromodynamics")
	assert.False(t, m.Matched())
	assert.Equal(t, NoMatch, m.Index)
	assert.Equal(t, 0, m.Score)
}

func TestNewResponder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []KnowledgeEntry
	}{
		{"no entries", nil},
		{"no keywords", []KnowledgeEntry{{Topic: "x", Response: "X"}}},
		{"empty keyword", []KnowledgeEntry{{Topic: "x", Keywords: []string{""}, Response: "X"}}},
		{"uppercase keyword", []KnowledgeEntry{{Topic: "x", Keywords: []string{"Squat"}, Response: "X"}}},
		{"empty response", []KnowledgeEntry{{Topic: "x", Keywords: []string{"squat"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResponder(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestKnowledgeBase_Valid(t *testing.T) {
	entries := Default().Entries()
	require.Len(t, entries, 16)
	require.NoError(t, validateEntries(entries))
	assert.Equal(t, "greeting", entries[0].Topic)
	assert.Equal(t, "features", entries[len(entries)-1].Topic)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	entries := Default().Entries()
	entries[0].Keywords[0] = "zzz"
	entries[0].Response = "changed"

	e, ok := Default().Entry(0)
	require.True(t, ok)
	assert.Equal(t, "hello", e.Keywords[0])
	assert.Equal(t, responseFor(t, "greeting"), e.Response)

	_, ok = Default().Entry(len(entries))
	assert.False(t, ok)
	_, ok = Default().Entry(NoMatch)
	assert.False(t, ok)
}

func TestRespond_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	want := responseFor(t, "hydration")
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Respond("how much water should I drink"))
		}()
	}
	wg.Wait()
}
