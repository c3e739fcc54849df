package oracle

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-vocab-coach/config"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessage      `json:"messages"`
	Temperature    float32            `json:"temperature"`
	MaxTokens      int                `json:"max_tokens"`
	ResponseFormat chatResponseFormat `json:"response_format"`
}
type chatResponseFormat struct {
	Type string `json:"type"`
}
type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client implements Oracle against the OpenAI API.
type Client struct {
	api        openai.Client
	model      string
	ttsModel   string
	imageModel string
	timeout    time.Duration
}

// NewClient builds a Client from the process configuration.
func NewClient() *Client {
	return &Client{
		api:        openai.NewClient(option.WithAPIKey(config.Cfg.OpenAI.Key)),
		model:      config.Cfg.OpenAI.Model,
		ttsModel:   config.Cfg.OpenAI.TTSModel,
		imageModel: config.Cfg.OpenAI.ImageModel,
		timeout:    time.Duration(config.Cfg.Oracle.TimeoutSeconds) * time.Second,
	}
}

var _ Oracle = (*Client)(nil)

// chatJSON sends one system+user exchange and unmarshals the model's JSON
// answer into out. Transport and deadline errors are classified here; a
// response that is not the expected JSON shape is an oracle error, never a
// partial result.
func (c *Client) chatJSON(ctx context.Context, systemMsg, userMsg string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := chatRequest{
		Model:          c.model,
		Temperature:    0.7,
		MaxTokens:      1024,
		ResponseFormat: chatResponseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemMsg},
			{Role: "user", Content: userMsg},
		},
	}
	var resp chatResponse
	if err := c.api.Post(ctx, "/chat/completions", req, &resp); err != nil {
		logger.Error(err, "%v: chat completion failed", config.ModuleOracle)
		return apperror.FromContext(err, apperror.KindOracle, status.OracleTransportFailed)
	}
	if resp.Error != nil {
		return apperror.Wrapf(apperror.KindOracle, status.OracleTransportFailed, "api error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return apperror.Wrapf(apperror.KindOracle, status.OracleMalformedPayload, "no choices returned")
	}
	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		logger.WithFields(map[string]interface{}{
			"content": truncate(content, 200),
			"error":   err,
		}).Errorf("oracle: unparsable payload")
		return apperror.Wrapf(apperror.KindOracle, status.OracleMalformedPayload, "unmarshal payload: %v", err)
	}
	return nil
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func malformed(format string, args ...interface{}) error {
	return apperror.Wrapf(apperror.KindOracle, status.OracleMalformedPayload, format, args...)
}

func historyJSON(history []ChatTurn) string {
	b, err := json.Marshal(history)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func sanitize(s string) string {
	out := strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(out)
}
