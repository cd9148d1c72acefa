package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MedAssist/ui/styles"
)

const (
	Subtitle   = "Ask medical questions and get AI-powered insights."
	Disclaimer = "⚠ Always consult healthcare professionals for medical advice"
	Footer     = "Powered by AI • For informational purposes only"
)

func RenderHeader(title string, width int) string {
	lines := []string{
		styles.TitleStyle().Render("✚ " + title),
		styles.SubtitleStyle().Render(Subtitle),
		styles.DisclaimerStyle().Render(Disclaimer),
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func RenderFooter(width int) string {
	footer := styles.FooterStyle().Render(Footer)
	if width <= 0 {
		return footer
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, footer)
}
