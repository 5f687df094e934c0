package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/tutor/pkg/llm"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Client is a minimal OpenAI-compatible chat completions client.
// OpenRouter and other compatible gateways work through BaseURL, Referer and AppTitle.
type Client struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
	httpDo   *http.Client
}

type Options struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
	Timeout  time.Duration
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		APIKey:   opts.APIKey,
		BaseURL:  strings.TrimRight(opts.BaseURL, "/"),
		Model:    opts.Model,
		AppTitle: opts.AppTitle,
		Referer:  opts.Referer,
		httpDo:   &http.Client{Timeout: opts.Timeout},
	}
}

func (c *Client) Name() string { return "openai" }

type imageURL struct {
	URL string `json:"url"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

// message content is either a plain string or, for vision calls, a list of parts.
type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

func buildRequest(model, prompt string, mode llm.Mode) chatCompletionsRequest {
	msg := message{Role: "user", Content: prompt}
	if mode.Kind == llm.ModeMultimodal {
		dataURL := fmt.Sprintf("data:%s;base64,%s", mode.MimeType, base64.StdEncoding.EncodeToString(mode.Image))
		msg.Content = []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}
	}
	return chatCompletionsRequest{
		Model:       model,
		Messages:    []message{msg},
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Invoke sends the prompt, with the image for multimodal mode, and returns the first choice.
func (c *Client) Invoke(ctx context.Context, prompt string, mode llm.Mode) (string, error) {
	if c.APIKey == "" {
		return "", &llm.ProviderError{Provider: c.Name(), Kind: llm.KindAuth, Message: "api key is empty"}
	}
	data, err := json.Marshal(buildRequest(c.Model, prompt, mode))
	if err != nil {
		return "", llm.InvalidResponse(c.Name(), "encode request", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", llm.Classify(c.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.AppTitle)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", llm.Classify(c.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", llm.StatusError(c.Name(), resp.StatusCode, string(body))
	}
	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.InvalidResponse(c.Name(), "decode response", err)
	}
	if len(out.Choices) == 0 {
		return "", llm.InvalidResponse(c.Name(), "no choices returned by model", nil)
	}
	answer := strings.TrimSpace(out.Choices[0].Message.Content)
	if answer == "" {
		return "", llm.InvalidResponse(c.Name(), "empty message content", nil)
	}
	return answer, nil
}
