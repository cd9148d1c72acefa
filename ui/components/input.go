package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MedAssist/internal/validate"
	"github.com/Rorical/MedAssist/ui/styles"
)

const (
	QuestionLabel = "What's your medical question?"
	QuestionHint  = "Minimum 10 characters"

	// NearLimit is where the counter turns amber.
	NearLimit = 800
)

// RenderQuestionField draws the label, the text area, any field error, and
// the hint/counter row.
func RenderQuestionField(textarea string, question string, fieldErr string, width int) string {
	var b strings.Builder

	b.WriteString(styles.LabelStyle().Render(QuestionLabel) + "\n")
	b.WriteString(styles.InputStyle(width, fieldErr != "").Render(textarea) + "\n")
	if fieldErr != "" {
		b.WriteString(styles.FieldErrorStyle().Render("✖ "+fieldErr) + "\n")
	}
	b.WriteString(renderCounterRow(question, width))

	return b.String()
}

func renderCounterRow(question string, width int) string {
	count := utf8.RuneCountInString(question)
	hint := styles.HintStyle().Render(QuestionHint)
	counter := styles.CounterStyle(count > NearLimit).
		Render(fmt.Sprintf("%d/%d", count, validate.MaxQuestionLength))

	gap := width - lipgloss.Width(hint) - lipgloss.Width(counter)
	if gap < 1 {
		gap = 1
	}
	return hint + strings.Repeat(" ", gap) + counter
}
