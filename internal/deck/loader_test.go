package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kanjiJSON = `{
  "name": "Kanji Words",
  "format": "v1.0.0",
  "faces": ["Kanji", "Hiragana", "Definition"],
  "cards": [
    ["日本", "にほん", "Japan"],
    [null, "いいえ", ["No", "Don't mention it"]]
  ]
}`

const colorsYAML = `name: Colors
faces: [English, Spanish]
cards:
  - [red, rojo]
  - [blue, [azul, celeste]]
  - [green, verde]
  - [white, blanco]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_JSON(t *testing.T) {
	d, err := Parse([]byte(kanjiJSON), "json", "fallback")
	require.NoError(t, err)

	assert.Equal(t, "Kanji Words", d.Name)
	assert.Equal(t, []string{"Kanji", "Hiragana", "Definition"}, d.Faces)
	require.Len(t, d.Cards, 2)
	assert.Nil(t, d.Cards[1][0])
	assert.Equal(t, Multi{"No", "Don't mention it"}, d.Cards[1][2])
}

func TestParse_JSONSchemaRejectsObjects(t *testing.T) {
	_, err := Parse([]byte(`{"faces":["a","b"],"cards":[[{"x":1},"b"]]}`), "json", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParse_YAMLSchemaMatchesJSON(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"object face", "faces: [a, b]\ncards:\n  - [{x: 1}, b]\n"},
		{"unknown key", "faces: [a, b]\ncolour: red\ncards: []\n"},
		{"missing cards", "faces: [a, b]\n"},
		{"nested list", "faces: [a, b]\ncards:\n  - [[[a]], b]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "yaml", "bad")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema")
		})
	}
}

func TestParse_YAMLScalarsAreText(t *testing.T) {
	d, err := Parse([]byte("faces: [a, b]\ncards:\n  - [true, [1, 2.5]]\n"), "yaml", "scalars")
	require.NoError(t, err)
	assert.Equal(t, Single("true"), d.Cards[0][0])
	assert.Equal(t, Multi{"1", "2.5"}, d.Cards[0][1])
}

func TestParse_YAMLNameFallback(t *testing.T) {
	d, err := Parse([]byte("faces: [a, b]\ncards:\n  - [1, one]\n"), "yaml", "numbers")
	require.NoError(t, err)
	assert.Equal(t, "numbers", d.Name)
	assert.Equal(t, Single("1"), d.Cards[0][0])
}

func TestParse_FormatVersion(t *testing.T) {
	_, err := Parse([]byte(`{"format":"v2.1.0","faces":["a","b"],"cards":[]}`), "json", "x")
	assert.ErrorIs(t, err, ErrFormatVersion)

	_, err = Parse([]byte(`{"format":"banana","faces":["a","b"],"cards":[]}`), "json", "x")
	assert.ErrorIs(t, err, ErrFormatVersion)
}

func TestLoader_WalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kanji.json", kanjiJSON)
	writeFile(t, dir, "nested/colors.yaml", colorsYAML)
	writeFile(t, dir, "notes.txt", "ignored")

	decks, err := NewLoader(nil).Load(dir)
	require.NoError(t, err)
	require.Len(t, decks, 2)

	names := []string{decks[0].Name, decks[1].Name}
	assert.ElementsMatch(t, []string{"Kanji Words", "Colors"}, names)
	for _, d := range decks {
		assert.NotEmpty(t, d.Path)
	}
}

func TestLoader_ExplicitUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "nope")
	_, err := NewLoader(nil).Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoader_InvalidDeck(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "faces: [a]\ncards: []\n")
	_, err := NewLoader(nil).Load(path)
	assert.ErrorIs(t, err, ErrNotEnoughFaces)
}

func TestLoader_DuplicateDeckNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", kanjiJSON)
	writeFile(t, dir, "b.json", kanjiJSON)
	_, err := NewLoader(nil).Load(dir)
	assert.ErrorIs(t, err, ErrDuplicateDeckName)
}

func TestLoader_MissingPath(t *testing.T) {
	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
