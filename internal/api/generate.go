package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"github.com/tmaxmax/go-sse"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// StreamGenerateContent sends the conversation to the model and yields the
// reply text fragment by fragment. The sequence ends after the first error.
// Stopping the iteration early closes the connection.
func (c *GeminiClient) StreamGenerateContent(ctx context.Context, model string, contents []models.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if c.IsClosed() {
			yield("", apierrors.ErrClientClosed)
			return
		}
		if len(contents) == 0 {
			yield("", apierrors.ErrEmptyMessage)
			return
		}

		payload, err := buildPayload(contents)
		if err != nil {
			yield("", fmt.Errorf("failed to build payload: %w", err))
			return
		}

		endpoint := modelPath(model) + models.ActionStreamGenerate
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := c.newRequest(ctx, http.MethodPost, endpoint+"?alt=sse", bytes.NewReader(payload), models.StreamHeaders())
		if err != nil {
			yield("", err)
			return
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			yield("", transportError(ctx, "stream generate content", endpoint, err))
			return
		}
		defer func() {
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
		}()

		if resp.StatusCode != http.StatusOK {
			yield("", statusError(resp, endpoint, model))
			return
		}

		for ev, err := range sse.Read(resp.Body, nil) {
			if err != nil {
				yield("", transportError(ctx, "read stream", endpoint, err))
				return
			}

			text, err := parseChunk(ev.Data, endpoint, model)
			if text != "" {
				if !yield(text, nil) {
					return
				}
			}
			if err != nil {
				yield("", err)
				return
			}
		}

		// A cancelled body read can look like a clean EOF
		if ctxErr := ctx.Err(); ctxErr != nil {
			yield("", transportError(ctx, "read stream", endpoint, ctxErr))
		}
	}
}

// buildPayload creates the JSON body for a generateContent request
func buildPayload(contents []models.Content) ([]byte, error) {
	return json.Marshal(models.GenerateRequest{Contents: contents})
}

// parseChunk extracts the text of one SSE data payload. Text that arrived
// together with a terminal condition is returned alongside the error.
func parseChunk(data, endpoint, model string) (string, error) {
	data = strings.TrimSpace(data)
	if data == "" || data == "[DONE]" {
		return "", nil
	}
	if !gjson.Valid(data) {
		return "", apierrors.NewParseError("stream chunk is not valid JSON", endpoint)
	}

	root := gjson.Parse(data)

	if errObj := root.Get(PathErrorRoot); errObj.Exists() {
		code := int(root.Get(PathErrorCode).Int())
		return "", classifyStatus(code, endpoint, model, []byte(data))
	}

	if reason := root.Get(PathBlockReason).String(); reason != "" {
		return "", apierrors.NewBlockedError(reason)
	}

	var sb strings.Builder
	root.Get(PathParts).ForEach(func(_, part gjson.Result) bool {
		if part.Get(PathPartThought).Bool() {
			return true
		}
		sb.WriteString(part.Get(PathPartText).String())
		return true
	})

	if reason := root.Get(PathFinishReason).String(); blockedFinishReasons[reason] {
		return sb.String(), apierrors.NewBlockedError(reason)
	}

	return sb.String(), nil
}

// classifyStatus maps an HTTP status and error body to the error taxonomy
func classifyStatus(status int, endpoint, model string, body []byte) error {
	message := gjson.GetBytes(body, PathErrorMessage).String()
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}

	for _, reason := range gjson.GetBytes(body, PathErrorReasons).Array() {
		switch reason.String() {
		case ReasonAPIKeyInvalid, ReasonAPIKeyExpired:
			return apierrors.NewAuthError(message)
		}
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierrors.NewAuthError(message)
	case http.StatusNotFound:
		return apierrors.NewModelError(model, message)
	case http.StatusTooManyRequests:
		return apierrors.NewUsageLimitError(message)
	}

	apiErr := apierrors.NewAPIErrorWithBody(status, endpoint, message, string(body))
	apiErr.Status = gjson.GetBytes(body, PathErrorStatus).String()
	return apiErr
}

// parseModelName reads the resource name from a model metadata body
func parseModelName(body []byte) string {
	return gjson.GetBytes(body, PathModelName).String()
}
