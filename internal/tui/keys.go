package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board-level key bindings.
type keyMap struct {
	Quit     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	New      key.Binding
	Search   key.Binding
	GroupBy  key.Binding
	Projects key.Binding
	Tags     key.Binding
	Back     key.Binding
	Save     key.Binding
	Next     key.Binding
	Prev     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Left:     key.NewBinding(key.WithKeys("h", "left")),
		Right:    key.NewBinding(key.WithKeys("l", "right")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		GroupBy:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group")),
		Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		Tags:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		Back:     key.NewBinding(key.WithKeys("esc")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s")),
		Next:     key.NewBinding(key.WithKeys("tab")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab")),
	}
}

// helpLine renders "key:desc" pairs for the status bar.
func helpLine(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += " "
		}
		h := b.Help()
		s += h.Key + ":" + h.Desc
	}
	return s
}
