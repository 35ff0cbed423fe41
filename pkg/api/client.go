package api

// SUBMIT ENDPOINT CLIENT

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/submission"

	"go.uber.org/zap"
)

// Client posts leads to the submit endpoint of the intermediary, which holds
// the record store credential.
type Client struct {
	submitURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ submission.Recorder = (*Client)(nil)

// SubmitResponse is the body returned by the submit endpoint.
type SubmitResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Detail  string          `json:"detail,omitempty"`
}

type createdRecords struct {
	Records []struct {
		ID string `json:"id"`
	} `json:"records"`
}

func NewClient(submitURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		submitURL: submitURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) CreateLead(ctx context.Context, lead funnel.Snapshot) (funnel.Ack, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return funnel.Ack{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(body))
	if err != nil {
		return funnel.Ack{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return funnel.Ack{}, &submission.Error{
			Message: "네트워크 오류로 신청하지 못했습니다. 다시 시도해주세요.",
			Err:     fmt.Errorf("do request: %w", err),
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return funnel.Ack{}, &submission.Error{
			Status:  resp.StatusCode,
			Message: "응답을 읽지 못했습니다. 다시 시도해주세요.",
			Err:     fmt.Errorf("read response: %w", err),
		}
	}

	var out SubmitResponse
	if jerr := json.Unmarshal(raw, &out); jerr != nil && resp.StatusCode == http.StatusOK {
		return funnel.Ack{}, &submission.Error{
			Status:  resp.StatusCode,
			Message: "응답 형식이 올바르지 않습니다.",
			Detail:  string(raw),
			Err:     fmt.Errorf("decode response: %w", jerr),
		}
	}

	if resp.StatusCode != http.StatusOK || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("API Error (%d)", resp.StatusCode)
		}
		detail := out.Detail
		if detail == "" && out.Error == "" {
			detail = string(raw)
		}
		c.logger.Warn("Submit endpoint rejected lead",
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg))
		return funnel.Ack{}, &submission.Error{Status: resp.StatusCode, Message: msg, Detail: detail}
	}

	var created createdRecords
	if len(out.Data) > 0 {
		if err := json.Unmarshal(out.Data, &created); err != nil {
			c.logger.Warn("Unexpected submit response data", zap.Error(err))
		}
	}
	ack := funnel.Ack{}
	if len(created.Records) > 0 {
		ack.RecordID = created.Records[0].ID
	}
	return ack, nil
}
