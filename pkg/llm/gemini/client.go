package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artem13815/tutor/pkg/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-pro"
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	httpDo  *http.Client
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
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
		APIKey:  opts.APIKey,
		BaseURL: strings.TrimRight(opts.BaseURL, "/"),
		Model:   opts.Model,
		httpDo:  &http.Client{Timeout: opts.Timeout},
	}
}

func (c *Client) Name() string { return "gemini" }

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type contentBlock struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []contentBlock `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

func buildRequest(prompt string, mode llm.Mode) generateRequest {
	parts := []part{{Text: prompt}}
	if mode.Kind == llm.ModeMultimodal {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mode.MimeType,
			Data:     base64.StdEncoding.EncodeToString(mode.Image),
		}})
	}
	return generateRequest{Contents: []contentBlock{{Role: "user", Parts: parts}}}
}

func (c *Client) endpoint() string {
	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, url.PathEscape(c.Model))
	q := url.Values{}
	q.Set("key", c.APIKey)
	return u + "?" + q.Encode()
}

// Invoke sends the prompt, with an inline image for multimodal mode, and joins the text parts of the first candidate.
func (c *Client) Invoke(ctx context.Context, prompt string, mode llm.Mode) (string, error) {
	if c.APIKey == "" {
		return "", &llm.ProviderError{Provider: c.Name(), Kind: llm.KindAuth, Message: "api key is empty"}
	}
	data, err := json.Marshal(buildRequest(prompt, mode))
	if err != nil {
		return "", llm.InvalidResponse(c.Name(), "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(data))
	if err != nil {
		return "", llm.Classify(c.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return "", llm.Classify(c.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", llm.StatusError(c.Name(), resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.InvalidResponse(c.Name(), "decode response", err)
	}
	if len(out.Candidates) == 0 {
		msg := "no candidates returned"
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			msg += ": blocked: " + out.PromptFeedback.BlockReason
		}
		return "", llm.InvalidResponse(c.Name(), msg, nil)
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", llm.InvalidResponse(c.Name(), "empty candidate text", nil)
	}
	return answer, nil
}
