package docservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kirillkom/docchat/internal/core/domain"
)

type askRequest struct {
	Question string `json:"question"`
}

// Ask posts the question and reads the "answer" field. The response status
// is not inspected: any body that decodes as JSON counts as an answer.
func (c *Client) Ask(ctx context.Context, question string) (*domain.AskResult, error) {
	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransportFailure, "ask question", fmt.Errorf("marshal ask request: %w", err))
	}

	var result *domain.AskResult
	err = c.executor.Execute(ctx, "ask", func(ctx context.Context) error {
		res, err := c.doAsk(ctx, body)
		if err != nil {
			return err
		}
		result = res
		return nil
	}, classifyError)
	if err != nil {
		return nil, wrapFailure("ask question", err)
	}
	return result, nil
}

func (c *Client) doAsk(ctx context.Context, body []byte) (*domain.AskResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit ask: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setRequestID(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ask request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ask response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("ask_non_success_status", "status", resp.StatusCode)
	}
	return decodeAnswer(raw)
}

func decodeAnswer(raw []byte) (*domain.AskResult, error) {
	if !json.Valid(raw) {
		return nil, &DecodeError{Operation: "ask", Err: fmt.Errorf("invalid json body")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Valid JSON that is not an object carries no answer field.
		return &domain.AskResult{}, nil
	}

	answer, ok := fields["answer"]
	if !ok || string(answer) == "null" {
		return &domain.AskResult{}, nil
	}

	var text string
	if err := json.Unmarshal(answer, &text); err != nil {
		return &domain.AskResult{Answer: string(answer), AnswerPresent: true}, nil
	}
	return &domain.AskResult{Answer: text, AnswerPresent: true}, nil
}
