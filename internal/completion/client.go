package completion

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	Model       = "openrouter/auto"
	MaxTokens   = 512
	Temperature = 0.7

	DefaultSiteTitle = "Medical Assistant"
	DefaultReferer   = "http://localhost"
)

// SystemPrompt frames every request as a medical information exchange.
const SystemPrompt = "You are a helpful medical assistant. Provide informative responses but always remind users to consult healthcare professionals for medical advice. Keep responses concise and easy to understand."

var ErrNoEndpoint = errors.New("completion endpoint not configured")

// Options carries the per-profile settings of the completion endpoint.
type Options struct {
	Endpoint  string // full URL the request is POSTed to
	APIKey    string
	SiteTitle string
	Referer   string

	// Transport is the underlying round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client sends one chat completion per question.
type Client struct {
	api      *openai.Client
	endpoint string
}

func NewClient(opts Options) *Client {
	if opts.SiteTitle == "" {
		opts.SiteTitle = DefaultSiteTitle
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(opts.Endpoint, "/chat/completions")
	// No client timeout: the request runs until the endpoint answers or ctx ends.
	clientConfig.HTTPClient = &http.Client{
		Transport: &endpointTransport{
			base:      base,
			endpoint:  opts.Endpoint,
			apiKey:    opts.APIKey,
			siteTitle: opts.SiteTitle,
			referer:   opts.Referer,
		},
	}

	return &Client{
		api:      openai.NewClientWithConfig(clientConfig),
		endpoint: opts.Endpoint,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// NewRequest builds the fixed two-message conversation for question.
func NewRequest(question string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strings.TrimSpace(question)},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
}

// Send performs a single completion request. Non-2xx answers come back as
// *openai.APIError or *openai.RequestError; see Interpret.
func (c *Client) Send(ctx context.Context, question string) (openai.ChatCompletionResponse, error) {
	return c.api.CreateChatCompletion(ctx, NewRequest(question))
}

// endpointTransport pins every request to the configured endpoint and adds
// the headers OpenRouter uses to attribute traffic.
type endpointTransport struct {
	base      http.RoundTripper
	endpoint  string
	apiKey    string
	siteTitle string
	referer   string
}

func (t *endpointTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	target, err := url.Parse(t.endpoint)
	if err != nil {
		return nil, err
	}

	r := req.Clone(req.Context())
	r.URL = target
	r.Host = target.Host
	r.Header.Set("Authorization", "Bearer "+t.apiKey)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("HTTP-Referer", t.referer)
	r.Header.Set("X-Title", t.siteTitle)

	return t.base.RoundTrip(r)
}
