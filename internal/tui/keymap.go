package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit         key.Binding
	toggleHelp   key.Binding
	blankMode    key.Binding
	negativeMode key.Binding
	testMode     key.Binding
	mergeMode    key.Binding
	clearColors  key.Binding
	deleteValues key.Binding
	copyCells    key.Binding
	pasteCells   key.Binding
	editCell     key.Binding
	cancel       key.Binding
	moveLeft     key.Binding
	moveRight    key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	saveSnapshot key.Binding
	loadSnapshot key.Binding
	exportReport key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		blankMode:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blank mode")),
		negativeMode: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "negative mode")),
		testMode:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test mode")),
		mergeMode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge mode")),
		clearColors:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear tags")),
		deleteValues: key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("⌫/x", "delete values")),
		copyCells:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selection")),
		pasteCells:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste at cell")),
		editCell:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		moveLeft:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "cell left")),
		moveRight:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "cell right")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "cell up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "cell down")),
		saveSnapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save plate")),
		loadSnapshot: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open plate")),
		exportReport: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export report")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.blankMode, k.negativeMode, k.testMode, k.mergeMode, k.copyCells, k.editCell, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.blankMode, k.negativeMode, k.testMode, k.mergeMode, k.clearColors, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.editCell, k.cancel, k.deleteValues},
		{k.copyCells, k.pasteCells, k.saveSnapshot, k.loadSnapshot, k.exportReport},
	}
}
