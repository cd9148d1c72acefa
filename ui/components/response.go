package components

import (
	"strings"

	"github.com/Rorical/MedAssist/ui/styles"
)

const (
	ResponseTitle      = "AI Response"
	ResponseDisclaimer = "Disclaimer: This information is for educational purposes only. Always consult a qualified healthcare professional."
)

// RenderResponse draws the answer panel around an already rendered body.
func RenderResponse(body string, width int) string {
	var b strings.Builder

	b.WriteString(styles.ResponseTitleStyle().Render("✔ "+ResponseTitle) + "\n")
	b.WriteString(strings.TrimRight(body, "\n") + "\n")
	b.WriteString(styles.ResponseDisclaimerStyle(width).Render(ResponseDisclaimer))

	return styles.ResponsePanelStyle(width).Render(b.String())
}
