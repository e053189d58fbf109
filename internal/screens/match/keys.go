package match

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Answer  key.Binding
	Move    key.Binding
	Select  key.Binding
	Next    key.Binding
	Cards   key.Binding
	Card    key.Binding
	Explain key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Next:    key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "correct answer to go on")),
		Cards:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "flashcards")),
		Card:    key.NewBinding(key.WithKeys("!", "@", "#", "$"), key.WithHelp("⇧1-4", "one card")),
		Explain: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explain")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// digit returns the 0-based option for "1".."4", or -1.
func digit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '4' {
		return int(s[0] - '1')
	}
	return -1
}

// shifted returns the 0-based option for the shifted digits "!@#$", or -1.
func shifted(s string) int {
	switch s {
	case "!":
		return 0
	case "@":
		return 1
	case "#":
		return 2
	case "$":
		return 3
	}
	return -1
}
