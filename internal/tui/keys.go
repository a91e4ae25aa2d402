package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	esc         key.Binding
	quit        key.Binding
	home        key.Binding
	writeups    key.Binding
	session     key.Binding
	search      key.Binding
	platform    key.Binding
	platformRev key.Binding
	difficulty  key.Binding
	diffRev     key.Binding
	reset       key.Binding
	retry       key.Binding
	version     key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
	home:        key.NewBinding(key.WithKeys("1")),
	writeups:    key.NewBinding(key.WithKeys("2")),
	session:     key.NewBinding(key.WithKeys("3")),
	search:      key.NewBinding(key.WithKeys("/")),
	platform:    key.NewBinding(key.WithKeys("p")),
	platformRev: key.NewBinding(key.WithKeys("P")),
	difficulty:  key.NewBinding(key.WithKeys("d")),
	diffRev:     key.NewBinding(key.WithKeys("D")),
	reset:       key.NewBinding(key.WithKeys("x")),
	retry:       key.NewBinding(key.WithKeys("r")),
	version:     key.NewBinding(key.WithKeys("v")),
}
