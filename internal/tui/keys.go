// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	next      key.Binding
	prev      key.Binding
	submit    key.Binding
	save      key.Binding
	paste     key.Binding
	clear     key.Binding
	buildInfo key.Binding
	quit      key.Binding
}

var keys = keyMap{
	next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / submit")),
	save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save now")),
	paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear draft")),
	buildInfo: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "about")),
	quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.submit, k.save, k.paste, k.clear, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.submit},
		{k.save, k.paste, k.clear},
		{k.buildInfo, k.quit},
	}
}
