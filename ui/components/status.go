package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MedAssist/internal/models"
	"github.com/Rorical/MedAssist/ui/styles"
)

// RenderNotification draws the transient status line; spinner is shown in
// front of loading notifications.
func RenderNotification(n models.Notification, spinner string, width int) string {
	if !n.Visible() {
		return ""
	}

	var color lipgloss.Color
	var icon string
	switch n.Kind {
	case models.NotificationSuccess:
		color, icon = styles.Green, "✔ "
	case models.NotificationError:
		color, icon = styles.Red, "✖ "
	default:
		color, icon = styles.Blue, spinner+" "
	}

	toast := styles.NotificationStyle(color).Render(icon + n.Message)
	if width <= 0 {
		return toast
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, toast)
}

func RenderStatus(status string, width int) string {
	return styles.StatusStyle(width).Render(status)
}
