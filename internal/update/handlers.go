package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/models"
	"github.com/Rorical/MedAssist/internal/validate"
)

const (
	MsgFixErrors = "Please fix the errors in your question"
	MsgLoading   = "Getting medical insights..."
	MsgReceived  = "Response received successfully!"
	MsgCleared   = "Form cleared"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// NotificationExpiredMsg is sent by the timer of notification ID.
type NotificationExpiredMsg struct {
	ID uint64
}

// ShowNotification replaces the current notification. Success and error
// notifications get a timer that only clears this notification.
func ShowNotification(appModel *models.AppModel, message string, kind models.NotificationKind) tea.Cmd {
	n := models.Notification{
		ID:      appModel.NextNotificationID(),
		Message: message,
		Kind:    kind,
	}
	appModel.Notification = n
	if !n.Expires() {
		return nil
	}
	return tea.Tick(models.NotificationLifetime, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{ID: n.ID}
	})
}

func HandleNotificationExpired(appModel *models.AppModel, msg NotificationExpiredMsg) {
	if appModel.Notification.ID == msg.ID {
		appModel.Notification = models.Notification{}
	}
}

// HandleSubmit validates the question and hands it to the core. It does
// nothing while a request is in flight or the question is blank.
func HandleSubmit(appModel *models.AppModel, eb *eventbus.EventBus) tea.Cmd {
	if !appModel.CanSubmit() {
		return nil
	}

	appModel.Phase = models.PhaseValidating
	appModel.FieldErrors = validate.Question(appModel.Question)
	if !appModel.FieldErrors.Valid() {
		appModel.Phase = models.PhaseIdle
		return ShowNotification(appModel, MsgFixErrors, models.NotificationError)
	}

	appModel.RequestID++
	event := eventbus.SubmitQuestionEvent{
		ID:       appModel.RequestID,
		Question: strings.TrimSpace(appModel.Question),
	}
	if err := eb.SendToCore(event); err != nil {
		appModel.Phase = models.PhaseIdle
		return ShowNotification(appModel, completion.MsgGeneric, models.NotificationError)
	}

	appModel.Phase = models.PhaseSubmitting
	appModel.Loading = true
	appModel.Response = ""
	return ShowNotification(appModel, MsgLoading, models.NotificationLoading)
}

// HandleClear resets the form. It reports false when clearing is disabled.
func HandleClear(appModel *models.AppModel) (tea.Cmd, bool) {
	if !appModel.CanClear() {
		return nil, false
	}
	appModel.Question = ""
	appModel.Response = ""
	appModel.FieldErrors = nil
	return ShowNotification(appModel, MsgCleared, models.NotificationSuccess), true
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.OutcomeEvent:
		// Only the latest submission may end the loading state.
		if event.ID != appModel.RequestID || !appModel.Loading {
			return nil
		}
		appModel.Loading = false
		appModel.Phase = models.PhaseIdle

		if event.Outcome.OK() {
			appModel.Response = event.Outcome.Text
			return ShowNotification(appModel, MsgReceived, models.NotificationSuccess)
		}
		appModel.Response = ""
		return ShowNotification(appModel, event.Outcome.Message, models.NotificationError)
	}

	return nil
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}
