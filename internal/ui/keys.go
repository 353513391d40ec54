package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	first      key.Binding
	last       key.Binding
	addTask    key.Binding
	openTask   key.Binding
	deleteTask key.Binding
	grab       key.Binding
	drop       key.Binding
	cancel     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card down")),
		first:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first card")),
		last:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last card")),
		addTask:    key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new card")),
		openTask:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "open card")),
		deleteTask: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
		grab:       key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m/space", "grab card")),
		drop:       key.NewBinding(key.WithKeys("m", " ", "enter"), key.WithHelp("m/space/enter", "drop")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.moveLeft, k.moveDown, k.addTask, k.openTask, k.grab, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.first, k.last},
		{k.addTask, k.openTask, k.deleteTask},
		{k.grab, k.drop, k.cancel, k.toggleHelp, k.quit},
	}
}

// dragKeyMap is the help shown while a card is grabbed.
type dragKeyMap struct{ keyMap }

func (k dragKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.moveLeft, k.moveDown, k.drop, k.cancel}
}

func (k dragKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
