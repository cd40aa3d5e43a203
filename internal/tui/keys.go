package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down         key.Binding
	Choose           key.Binding
	SwitchPreview    key.Binding
	Quit             key.Binding
	HalfUp, HalfDown key.Binding
	PageUp, PageDown key.Binding
}

func binding(keys []string, help, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Up:            binding([]string{"up", "ctrl+k"}, "up/C-k", "previous"),
	Down:          binding([]string{"down", "ctrl+j"}, "dn/C-j", "next"),
	Choose:        binding([]string{"enter"}, "enter", "copy contact"),
	SwitchPreview: binding([]string{"tab"}, "tab", "chats/report"),
	Quit:          binding([]string{"esc", "ctrl+c"}, "esc", "quit"),
	HalfUp:        binding([]string{"ctrl+u"}, "C-u", "preview up"),
	HalfDown:      binding([]string{"ctrl+d"}, "C-d", "preview down"),
	PageUp:        binding([]string{"pgup"}, "pgup", "preview page up"),
	PageDown:      binding([]string{"pgdown"}, "pgdn", "preview page down"),
}

// helpLine is the status bar hint, built from the bindings themselves.
func (k keyMap) helpLine() []string {
	var out []string
	for _, b := range []key.Binding{k.SwitchPreview, k.Choose, k.HalfDown, k.Quit} {
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
