package styles

import "github.com/charmbracelet/lipgloss"

var (
	Blue  = lipgloss.Color("33")
	Amber = lipgloss.Color("214")
	Green = lipgloss.Color("35")
	Red   = lipgloss.Color("203")
	Muted = lipgloss.Color("241")
	Text  = lipgloss.Color("252")
)

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)
}

func SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
}

func DisclaimerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
}

func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)
}

func InputStyle(width int, invalid bool) lipgloss.Style {
	border := lipgloss.Color("62")
	if invalid {
		border = Red
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 4)
}

func FieldErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Red)
}

func HintStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted)
}

func CounterStyle(nearLimit bool) lipgloss.Style {
	if nearLimit {
		return lipgloss.NewStyle().Foreground(Amber).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Muted)
}

func NotificationStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(color).
		Bold(true).
		Padding(0, 2)
}

func ResponsePanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Green).
		Padding(0, 1).
		Width(width - 4)
}

func ResponseTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)
}

func ResponseDisclaimerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Amber).
		Padding(0, 1).
		Width(width - 8)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func FooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)
}
