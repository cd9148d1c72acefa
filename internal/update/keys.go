package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Rorical/MedAssist/internal/models"
)

// KeyMap defines the form's keyboard bindings.
type KeyMap struct {
	Submit   key.Binding
	Clear    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "ask question"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll answer up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll answer down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Sync enables the bindings that the form state currently allows, so the
// help line greys out disabled controls.
func (k *KeyMap) Sync(appModel *models.AppModel) {
	k.Submit.SetEnabled(appModel.CanSubmit())
	k.Clear.SetEnabled(appModel.CanClear())
	hasResponse := appModel.Response != ""
	k.PageUp.SetEnabled(hasResponse)
	k.PageDown.SetEnabled(hasResponse)
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.PageUp, k.PageDown, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
