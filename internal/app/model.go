package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MedAssist/internal/dispatcher"
	"github.com/Rorical/MedAssist/internal/models"
	"github.com/Rorical/MedAssist/internal/update"
	"github.com/Rorical/MedAssist/internal/utils"
	"github.com/Rorical/MedAssist/internal/validate"
	"github.com/Rorical/MedAssist/ui/components"
)

const (
	defaultContentWidth = 80
	maxContentWidth     = 100
	questionRows        = 4
	compactQuestionRows = 2
	minAnswerRows       = 3

	Placeholder = "e.g., What are the symptoms of dehydration?"
)

// AppModel is the bubbletea model of the question form.
type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	keys       update.KeyMap
	textarea   textarea.Model
	spinner    spinner.Model
	viewport   viewport.Model
	help       help.Model
	renderer   *utils.MarkdownRenderer
	title      string
}

func NewAppModel(disp *dispatcher.EventDispatcher, renderer *utils.MarkdownRenderer, state models.AppModel, title string) *AppModel {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.CharLimit = validate.MaxQuestionLength
	ta.ShowLineNumbers = false
	ta.SetHeight(questionRows)
	ta.SetWidth(defaultContentWidth - 6)
	ta.Focus()

	m := &AppModel{
		appModel:   state,
		dispatcher: disp,
		keys:       update.DefaultKeyMap(),
		textarea:   ta,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:   viewport.New(defaultContentWidth-4, minAnswerRows),
		help:       help.New(),
		renderer:   renderer,
		title:      title,
	}
	m.keys.Sync(&m.appModel)
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if !m.appModel.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case update.CoreEventMsg:
		// Handle core events and continue listening
		cmd := update.HandleMessage(&m.appModel, msg)
		return m, tea.Batch(cmd, m.afterRequest(), m.dispatcher.ListenForCoreEvents())

	case tea.WindowSizeMsg:
		update.HandleMessage(&m.appModel, msg)
		m.resize()
		return m, nil
	}

	cmd := update.HandleMessage(&m.appModel, msg)
	var taCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	return m, tea.Batch(cmd, taCmd)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.keys.Sync(&m.appModel)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Submit):
		cmd := update.HandleSubmit(&m.appModel, m.dispatcher.GetEventBus())
		m.keys.Sync(&m.appModel)
		if !m.appModel.Loading {
			return cmd
		}
		m.textarea.Blur()
		m.viewport.SetContent("")
		return tea.Batch(cmd, m.spinner.Tick)

	case key.Matches(msg, m.keys.Clear):
		cmd, cleared := update.HandleClear(&m.appModel)
		if cleared {
			m.textarea.Reset()
			m.viewport.SetContent("")
			m.keys.Sync(&m.appModel)
		}
		return cmd

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	// The text area is read-only while a request is in flight.
	if m.appModel.Loading {
		return nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.appModel.Question = m.textarea.Value()
	m.keys.Sync(&m.appModel)
	return cmd
}

// afterRequest brings the widgets in line with a finished request: the
// answer is rendered and scrolled to its start, and the form is editable again.
func (m *AppModel) afterRequest() tea.Cmd {
	if m.appModel.Loading {
		return nil
	}
	m.keys.Sync(&m.appModel)
	m.refreshAnswer()
	return m.textarea.Focus()
}

func (m *AppModel) refreshAnswer() {
	if m.appModel.Response == "" {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderer.Render(m.appModel.Response))
	m.viewport.GotoTop()
}

func (m *AppModel) contentWidth() int {
	width := m.appModel.Width
	if width <= 0 {
		return defaultContentWidth
	}
	if width > maxContentWidth {
		return maxContentWidth
	}
	return width
}

func (m *AppModel) resize() {
	width := m.contentWidth()
	m.textarea.SetWidth(width - 6)
	m.viewport.Width = width - 6
	m.help.Width = width

	if m.renderer.Width() == width-8 {
		return
	}
	if err := m.renderer.Resize(width - 8); err == nil {
		m.refreshAnswer()
	}
}

func (m *AppModel) View() string {
	width := m.contentWidth()
	if m.appModel.Response == "" {
		m.textarea.SetHeight(questionRows)
		return m.chrome(width, true)
	}

	// The answer panel gets whatever rows the terminal has left. On short
	// terminals the question box shrinks and the footer goes first.
	full := true
	m.textarea.SetHeight(questionRows)
	rows := m.answerRows(m.chrome(width, full), width)
	if rows < minAnswerRows {
		full = false
		m.textarea.SetHeight(compactQuestionRows)
		rows = m.answerRows(m.chrome(width, full), width)
	}
	if rows < 1 {
		rows = 1
	}
	m.viewport.Height = rows

	top, bottom := m.sections(width, full)
	return top + "\n" + components.RenderResponse(m.viewport.View(), width) + "\n" + bottom
}

// answerRows is the viewport height that makes the whole view exactly fill
// the terminal, given everything else that is drawn.
func (m *AppModel) answerRows(chrome string, width int) int {
	if m.appModel.Height <= 0 {
		return m.viewport.Height
	}
	// An empty panel still draws one body row.
	frame := lipgloss.Height(components.RenderResponse("", width)) - 1
	return m.appModel.Height - lipgloss.Height(chrome) - frame - 1
}

func (m *AppModel) chrome(width int, footer bool) string {
	top, bottom := m.sections(width, footer)
	return top + bottom
}

// sections renders what sits above and below the answer panel.
func (m *AppModel) sections(width int, footer bool) (string, string) {
	var top strings.Builder
	top.WriteString(components.RenderHeader(m.title, width) + "\n\n")
	if n := components.RenderNotification(m.appModel.Notification, m.spinner.View(), width); n != "" {
		top.WriteString(n + "\n")
	} else {
		top.WriteString("\n")
	}
	top.WriteString(components.RenderQuestionField(m.textarea.View(), m.appModel.Question, m.appModel.QuestionError(), width))
	top.WriteString("\n\n")
	top.WriteString(m.help.View(m.keys) + "\n")

	bottom := components.RenderStatus(m.status(), width)
	if footer {
		bottom = "\n" + components.RenderFooter(width) + "\n" + bottom
	}
	return top.String(), bottom
}

func (m *AppModel) status() string {
	profile := fmt.Sprintf("Profile: %s [OK]", m.appModel.ProfileName)
	if !m.appModel.Configured {
		profile = fmt.Sprintf("Profile: %s [NOT CONFIGURED]", m.appModel.ProfileName)
	}
	return profile + " • " + m.appModel.Phase.String()
}
