package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ModeKind tells whether a provider call carries only text or text plus an image.
type ModeKind string

const (
	ModeText       ModeKind = "text"
	ModeMultimodal ModeKind = "multimodal"
)

// Mode is the invocation mode. Image fields are set only for ModeMultimodal.
type Mode struct {
	Kind     ModeKind
	Image    []byte
	MimeType string
}

func TextMode() Mode { return Mode{Kind: ModeText} }

func MultimodalMode(image []byte, mimeType string) Mode {
	return Mode{Kind: ModeMultimodal, Image: image, MimeType: mimeType}
}

// Provider is a generative model backend. It hides vendor payloads from the domain.
// Failures should be *ProviderError; anything else is classified by the router.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, prompt string, mode Mode) (string, error)
}

// ErrorKind is a vendor-neutral failure class.
type ErrorKind string

const (
	KindAuth            ErrorKind = "auth"
	KindQuota           ErrorKind = "quota"
	KindTransient       ErrorKind = "transient"
	KindInvalidResponse ErrorKind = "invalid_response"
)

// ProviderError is a failed provider call.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, ": http %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// KindFromStatus maps a non-2xx HTTP status onto an ErrorKind.
func KindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusTooManyRequests:
		return KindQuota
	case status == http.StatusRequestTimeout || status/100 == 5:
		return KindTransient
	default:
		return KindInvalidResponse
	}
}

const maxErrorBody = 512

// StatusError builds the ProviderError for a non-2xx reply. body is truncated
// to maxErrorBody bytes on a rune boundary.
func StatusError(provider string, status int, body string) *ProviderError {
	body = strings.TrimSpace(body)
	if len(body) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n]
	}
	return &ProviderError{Provider: provider, Kind: KindFromStatus(status), Status: status, Message: body}
}

// InvalidResponse reports a reply that could not be turned into an answer.
func InvalidResponse(provider, msg string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: KindInvalidResponse, Message: msg, Err: err}
}

// Classify wraps err into a ProviderError. Existing ProviderErrors pass through.
// Timeouts become KindTransient so the router treats them like any other failure.
func Classify(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Provider: provider, Kind: KindTransient, Message: "timeout", Err: err}
	}
	// network failures, cancellation and anything unrecognised
	return &ProviderError{Provider: provider, Kind: KindTransient, Err: err}
}
