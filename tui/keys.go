package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"mboard/internal/infrastructure/config"
)

// keyMap holds the bindings used by Update
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Grab         key.Binding
	Cancel       key.Binding
	AddTask      key.Binding
	AddColumn    key.Binding
	Edit         key.Binding
	DeleteTask   key.Binding
	DeleteColumn key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Quit         key.Binding
}

// newKeyMap builds bindings from the configured key lists
func newKeyMap(kb config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:           binding(kb.Up, "up"),
		Down:         binding(kb.Down, "down"),
		Left:         binding(kb.Left, "left"),
		Right:        binding(kb.Right, "right"),
		Grab:         binding(kb.Grab, "grab/drop"),
		Cancel:       binding(kb.Cancel, "cancel"),
		AddTask:      binding(kb.AddTask, "add task"),
		AddColumn:    binding(kb.AddColumn, "add column"),
		Edit:         binding(kb.Edit, "edit"),
		DeleteTask:   binding(kb.DeleteTask, "delete task"),
		DeleteColumn: binding(kb.DeleteColumn, "delete column"),
		Undo:         binding(kb.Undo, "undo"),
		Redo:         binding(kb.Redo, "redo"),
		Quit:         binding(kb.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

func helpKeys(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			names = append(names, "space")
		case "up":
			names = append(names, "↑")
		case "down":
			names = append(names, "↓")
		case "left":
			names = append(names, "←")
		case "right":
			names = append(names, "→")
		default:
			names = append(names, k)
		}
	}
	return strings.Join(names, "/")
}
