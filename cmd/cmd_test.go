package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/stats"
	"github.com/abhisek/cardiz/internal/store"
)

const numbersYAML = `name: Numbers
faces: [English, German]
cards:
  - [one, eins]
  - [two, zwei]
  - [three, drei]
  - [four, vier]
  - [five, fünf]
`

func writeDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numbers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(numbersYAML), 0o644))
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CARDIZ_DB", filepath.Join(t.TempDir(), "cardiz.db"))
	t.Setenv("CARDIZ_STATS", filepath.Join(t.TempDir(), "stats.json"))
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "", "check", writeDeck(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Numbers")
	assert.Contains(t, out, "1 deck, 5 cards OK")
}

func TestCheck_InvalidDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faces: [a]\ncards: []\n"), 0o644))

	_, err := execute(t, "", "check", path)
	assert.Error(t, err)
}

func TestPlainQuiz_QuitImmediately(t *testing.T) {
	out, err := execute(t, "q\n", "--plain", "--count", "3", writeDeck(t))
	require.NoError(t, err)
	assert.Contains(t, out, "You got 0 correct out of 0")
}

func TestFinishSession_AfterInterrupt(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "cardiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	decks := []deck.Deck{{
		Name:  "Numbers",
		Faces: []string{"English", "German"},
		Cards: []deck.Card{
			{deck.Single("one"), deck.Single("eins")},
			{deck.Single("two"), deck.Single("zwei")},
		},
	}}
	id := deck.Flatten(decks)[0].ID(decks)

	ctx, cancel := context.WithCancel(context.Background())
	model, err := stats.Load(ctx, st.CardStatsRepo())
	require.NoError(t, err)
	gen := problemgen.New(decks, problemgen.NewPool(decks, model.Weight))
	sess := session.New(gen, model, session.Config{})
	require.NoError(t, st.SessionRepo().Start(ctx, store.SessionStart{
		ID:        sess.ID(),
		Mode:      string(sess.Mode()),
		Decks:     []string{"Numbers"},
		StartedAt: sess.StartedAt(),
	}))

	model.RecordIncorrect(id)
	sess.Quit()
	cancel()

	sum, err := finishSession(ctx, model, st, sess, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, session.PhaseQuit, sum.Phase)

	saved, err := stats.Load(context.Background(), st.CardStatsRepo())
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Stats(id).Incorrect)

	recent, err := st.SessionRepo().Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "quit", recent[0].Phase)
}

func TestPlainQuiz_RejectsFlash(t *testing.T) {
	_, err := execute(t, "", "--plain", "--mode", "flash", writeDeck(t))
	assert.ErrorContains(t, err, "flash mode")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cardiz (devel)\n", out)
}

func TestReset_Aborted(t *testing.T) {
	out, err := execute(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
}

func TestStatRows_SortedByWeight(t *testing.T) {
	model := stats.NewModel(nil)
	model.RecordCorrect("Numbers:one")
	model.RecordIncorrect("Numbers:two")
	model.RecordIncorrect("Numbers:two")

	rows := statRows(model, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "Numbers:two", rows[0].id)
	assert.Equal(t, "Numbers:one", rows[1].id)

	rows = statRows(model, []string{"Numbers:one", "Numbers:three"})
	require.Len(t, rows, 2)
	assert.Equal(t, "Numbers:three", rows[0].id, "unanswered cards outweigh known ones")
}

func TestHistoryLine(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := store.SessionRecord{
		SessionStart: store.SessionStart{
			ID:        "0123456789abcdef",
			Mode:      "match",
			Decks:     []string{"Numbers", "Colors"},
			StartedAt: start,
		},
		Phase:   "completed",
		Correct: 3,
		Total:   4,
		EndedAt: start.Add(95 * time.Second),
	}

	line := historyLine(r, start.Add(2*time.Hour))
	assert.Contains(t, line, "01234567")
	assert.Contains(t, line, "2 hours ago")
	assert.Contains(t, line, "3/4 (75%)")
	assert.Contains(t, line, "1:35")
	assert.Contains(t, line, "Numbers, Colors")

	r.EndedAt = time.Time{}
	assert.Contains(t, historyLine(r, start), "unfinished")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
