package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/MedAssist/internal/models"
)

// HandleMessage routes the non-keyboard messages that change form state.
func HandleMessage(appModel *models.AppModel, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case NotificationExpiredMsg:
		HandleNotificationExpired(appModel, msg)
		return nil
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}
