package app

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/dispatcher"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/models"
	"github.com/Rorical/MedAssist/internal/update"
	"github.com/Rorical/MedAssist/internal/utils"
	"github.com/Rorical/MedAssist/internal/validate"
)

func newTestModel(t *testing.T) (*AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)
	t.Cleanup(func() {
		disp.Stop()
		eb.Close()
	})

	renderer, err := utils.NewMarkdownRenderer(utils.StyleNoTTY, 72)
	require.NoError(t, err)

	state := models.AppModel{ProfileName: "default", Configured: true}
	return NewAppModel(disp, renderer, state, "Medical Assistant"), eb
}

func typeText(m *AppModel, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *AppModel, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func drain(eb *eventbus.EventBus) []eventbus.UIEvent {
	var events []eventbus.UIEvent
	for {
		select {
		case e := <-eb.UIToCore():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestSubmitAndReceiveAnswer(t *testing.T) {
	m, eb := newTestModel(t)

	typeText(m, "What are the symptoms of dehydration?")
	assert.Equal(t, "What are the symptoms of dehydration?", m.appModel.Question)

	press(m, tea.KeyCtrlS)
	events := drain(eb)
	require.Len(t, events, 1)
	submit := events[0].(eventbus.SubmitQuestionEvent)
	assert.Equal(t, "What are the symptoms of dehydration?", submit.Question)
	assert.True(t, m.appModel.Loading)
	assert.Contains(t, m.View(), update.MsgLoading)

	// Typing and a second submit are ignored while loading.
	typeText(m, " more")
	assert.Equal(t, "What are the symptoms of dehydration?", m.textarea.Value())
	press(m, tea.KeyCtrlS)
	assert.Empty(t, drain(eb))

	m.Update(update.CoreEventMsg{Event: eventbus.OutcomeEvent{
		ID:      submit.ID,
		Outcome: completion.Success("Drink water."),
	}})

	assert.False(t, m.appModel.Loading)
	assert.Equal(t, models.PhaseIdle, m.appModel.Phase)
	view := m.View()
	assert.Contains(t, view, "Drink water.")
	assert.Contains(t, view, update.MsgReceived)
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestSubmitInvalidQuestion(t *testing.T) {
	m, eb := newTestModel(t)

	typeText(m, "hi")
	press(m, tea.KeyCtrlS)

	assert.Empty(t, drain(eb))
	assert.False(t, m.appModel.Loading)
	view := m.View()
	assert.Contains(t, view, validate.ErrQuestionTooShort)
	assert.Contains(t, view, update.MsgFixErrors)
}

func TestSubmitBlankIsDisabled(t *testing.T) {
	m, eb := newTestModel(t)

	typeText(m, "   ")
	press(m, tea.KeyCtrlS)
	assert.Empty(t, drain(eb))
	assert.False(t, m.appModel.Notification.Visible())
}

func TestFailureShowsCategoryMessage(t *testing.T) {
	m, eb := newTestModel(t)

	typeText(m, "Is it safe to fly with a cold?")
	press(m, tea.KeyCtrlS)
	submit := drain(eb)[0].(eventbus.SubmitQuestionEvent)

	m.Update(update.CoreEventMsg{Event: eventbus.OutcomeEvent{
		ID:      submit.ID,
		Outcome: completion.Failure(completion.CategoryRateLimited, completion.MsgRateLimited),
	}})

	assert.Empty(t, m.appModel.Response)
	view := m.View()
	assert.Contains(t, view, completion.MsgRateLimited)
	assert.NotContains(t, view, "AI Response")
}

func TestClearResetsForm(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(m, "hi")
	press(m, tea.KeyCtrlS)
	require.NotEmpty(t, m.appModel.QuestionError())

	press(m, tea.KeyCtrlL)
	assert.Empty(t, m.textarea.Value())
	assert.Empty(t, m.appModel.Question)
	assert.Empty(t, m.appModel.QuestionError())
	assert.Contains(t, m.View(), update.MsgCleared)
}

func TestCounterTracksInput(t *testing.T) {
	m, _ := newTestModel(t)

	typeText(m, "How long does a fever last?")
	assert.Contains(t, m.View(), "27/1000")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	assert.Equal(t, maxContentWidth-6, m.viewport.Width)
	assert.Equal(t, maxContentWidth-8, m.renderer.Width())

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.Equal(t, 60-6, m.viewport.Width)
	assert.Equal(t, 60-8, m.renderer.Width())
}

func TestViewFitsTerminalWithLongAnswer(t *testing.T) {
	var answer strings.Builder
	for i := 0; i < 80; i++ {
		answer.WriteString("- Drink small sips of water often.\n")
	}

	for _, height := range []int{24, 30, 40} {
		t.Run(fmt.Sprintf("height %d", height), func(t *testing.T) {
			m, eb := newTestModel(t)
			m.Update(tea.WindowSizeMsg{Width: 80, Height: height})

			typeText(m, "What are the symptoms of dehydration?")
			press(m, tea.KeyCtrlS)
			submit := drain(eb)[0].(eventbus.SubmitQuestionEvent)
			m.Update(update.CoreEventMsg{Event: eventbus.OutcomeEvent{
				ID:      submit.ID,
				Outcome: completion.Success(answer.String()),
			}})

			view := m.View()
			assert.LessOrEqual(t, lipgloss.Height(view), height)
			assert.Contains(t, view, "Medical Assistant")
			assert.Contains(t, view, "Drink small sips")
			assert.GreaterOrEqual(t, m.viewport.Height, 1)
		})
	}
}

func TestStatusShowsPhase(t *testing.T) {
	m, eb := newTestModel(t)
	assert.Contains(t, m.View(), "• Ready")

	typeText(m, "Is it safe to fly with a cold?")
	press(m, tea.KeyCtrlS)
	assert.Equal(t, models.PhaseSubmitting, m.appModel.Phase)
	assert.Contains(t, m.View(), "• Getting Response...")

	submit := drain(eb)[0].(eventbus.SubmitQuestionEvent)
	m.Update(update.CoreEventMsg{Event: eventbus.OutcomeEvent{
		ID:      submit.ID,
		Outcome: completion.Success("Usually, yes."),
	}})
	assert.Contains(t, m.View(), "• Ready")
}

func TestStatusLine(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Profile: default [OK]")

	m.appModel.Configured = false
	assert.Contains(t, m.View(), "[NOT CONFIGURED]")
}
