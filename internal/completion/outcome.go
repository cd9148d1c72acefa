package completion

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Category classifies how a request ended.
type Category int

const (
	CategoryNone Category = iota
	CategoryUnauthorized
	CategoryRateLimited
	CategoryServerError
	CategoryNetworkOffline
	CategoryGeneric
)

const (
	MsgUnauthorized   = "Invalid API key."
	MsgRateLimited    = "Too many requests. Please wait."
	MsgServerError    = "Server error. Try again later."
	MsgNetworkOffline = "No internet connection."
	MsgGeneric        = "Failed to get response. Please try again."
	MsgEmptyResponse  = "No response received from the AI"
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryUnauthorized:
		return "unauthorized"
	case CategoryRateLimited:
		return "rate_limited"
	case CategoryServerError:
		return "server_error"
	case CategoryNetworkOffline:
		return "network_offline"
	default:
		return "generic"
	}
}

// Message is the user-facing text for a failure category.
func (c Category) Message() string {
	switch c {
	case CategoryUnauthorized:
		return MsgUnauthorized
	case CategoryRateLimited:
		return MsgRateLimited
	case CategoryServerError:
		return MsgServerError
	case CategoryNetworkOffline:
		return MsgNetworkOffline
	default:
		return MsgGeneric
	}
}

// Outcome is the result of one submission: either the answer text or a
// failure category with its message.
type Outcome struct {
	Text     string
	Category Category
	Message  string
}

func Success(text string) Outcome {
	return Outcome{Text: text, Category: CategoryNone}
}

func Failure(category Category, message string) Outcome {
	return Outcome{Category: category, Message: message}
}

func (o Outcome) OK() bool {
	return o.Category == CategoryNone
}

// Interpret maps the result of Client.Send to an Outcome. offline reports
// whether the machine had no network when the request failed; it wins over
// any other classification of err.
func Interpret(resp openai.ChatCompletionResponse, err error, offline bool) Outcome {
	if err != nil {
		if offline {
			return Failure(CategoryNetworkOffline, MsgNetworkOffline)
		}
		category := classifyStatus(statusCode(err))
		return Failure(category, category.Message())
	}

	if len(resp.Choices) == 0 {
		return Failure(CategoryGeneric, MsgEmptyResponse)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Failure(CategoryGeneric, MsgEmptyResponse)
	}
	return Success(text)
}

// statusCode extracts the HTTP status carried by err, or 0.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func classifyStatus(status int) Category {
	switch {
	case status == http.StatusUnauthorized:
		return CategoryUnauthorized
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited
	case status >= 500 && status <= 599:
		return CategoryServerError
	default:
		return CategoryGeneric
	}
}
