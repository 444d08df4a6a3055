package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/utils"
)

const (
	defaultModel     = "claude-3-5-sonnet-latest"
	defaultMaxTokens = 4096
	apiVersion       = "2023-06-01"
)

// Client talks to an Anthropic-style messages endpoint.
type Client struct {
	httpclient *http.Client
	url        string
	key        string
	model      string
	timeout    time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// NewClient creates a language model client
func NewClient(url, key string) (*Client, error) {
	res := Client{}
	if url == "" {
		return nil, fmt.Errorf("no url")
	}
	if key == "" {
		return nil, fmt.Errorf("no api key")
	}
	res.url = url
	res.key = key
	res.model = defaultModel
	res.timeout = time.Minute * 2
	res.httpclient = &http.Client{Transport: newTransport()}
	goapp.Log.Info().Str("url", url).Msg("LLM")
	return &res, nil
}

// Summarize asks the model for a summary of text with the given template,
// tone and word limit.
func (c *Client) Summarize(ctx context.Context, text, template, tone string, wordLimit int) (string, error) {
	defer utils.MeasureTime("summarize", time.Now())
	return c.complete(ctx, summarizePrompt(text, template, tone, wordLimit))
}

// Translate asks the model for a translation of text.
func (c *Client) Translate(ctx context.Context, text, language, style string, preserveFormatting bool) (string, error) {
	defer utils.MeasureTime("translate", time.Now())
	return c.complete(ctx, translatePrompt(text, language, style, preserveFormatting))
}

// Analyze runs a caller-supplied prompt over text.
func (c *Client) Analyze(ctx context.Context, text, prompt string) (string, error) {
	defer utils.MeasureTime("analyze", time.Now())
	return c.complete(ctx, analyzePrompt(text, prompt))
}

// Clean asks the model to remove filler words and recognition artifacts.
func (c *Client) Clean(ctx context.Context, text string) (string, error) {
	defer utils.MeasureTime("clean", time.Now())
	return c.complete(ctx, cleanPrompt(text))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancelF := context.WithTimeout(ctx, c.timeout)
	defer cancelF()

	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(messagesRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/messages", b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.key)
	req.Header.Set("anthropic-version", apiVersion)
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1000))
		_ = resp.Body.Close()
	}()
	if err := goapp.ValidateHTTPResp(resp, 100); err != nil {
		return "", fmt.Errorf("can't invoke '%s': %w", req.URL.String(), err)
	}
	res := &messagesResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, cb := range res.Content {
		if cb.Type == "text" {
			sb.WriteString(cb.Text)
		}
	}
	out := sb.String()
	if out == "" {
		return "", fmt.Errorf("empty model response")
	}
	return out, nil
}

func newTransport() http.RoundTripper {
	res := http.DefaultTransport.(*http.Transport).Clone()
	res.MaxConnsPerHost = 5
	res.MaxIdleConns = 2
	res.MaxIdleConnsPerHost = 2
	res.IdleConnTimeout = 90 * time.Second
	return res
}
