package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/transcript"
	"github.com/describe-ai/audio-analyzer/internal/utils"
	"github.com/shopspring/decimal"
)

// Client talks to the speech-to-text backend.
type Client struct {
	httpclient *http.Client
	url        string
	timeout    time.Duration
}

// Request is one transcription call. When Explicit is set, only the
// [Start, End) sub-range of the audio is transcribed.
type Request struct {
	Name     string
	Audio    []byte
	Model    string
	Start    float64
	End      float64
	Explicit bool
}

// Result is the decoded backend answer. Word timestamps are always relative
// to the original asset: the backend returns offsets relative to the trimmed
// clip, so sub-range results are shifted by the range start here.
type Result struct {
	Text     string
	Words    []transcript.WordTimestamp
	Duration float64
	Language string
}

type wireWord struct {
	Word  string          `json:"word"`
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
}

type wireResponse struct {
	Success  bool            `json:"success"`
	Text     string          `json:"text"`
	Language string          `json:"language"`
	Duration decimal.Decimal `json:"duration"`
	Words    []wireWord      `json:"words"`
	Error    string          `json:"error,omitempty"`
}

type loadRequest struct {
	Model string `json:"model"`
}

type loadResponse struct {
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

// NewClient creates a transcriber client
func NewClient(url string) (*Client, error) {
	res := Client{}
	if url == "" {
		return nil, fmt.Errorf("no url")
	}
	res.url = url
	res.timeout = time.Minute * 10
	res.httpclient = &http.Client{Transport: newTransport()}
	goapp.Log.Info().Str("url", url).Msg("Transcriber")
	return &res, nil
}

// Load asks the backend to preload a model.
func (c *Client) Load(ctx context.Context, model string) error {
	ctx, cancelF := context.WithTimeout(ctx, c.timeout)
	defer cancelF()

	b := new(bytes.Buffer)
	if err := json.NewEncoder(b).Encode(loadRequest{Model: model}); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/load", b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	if err := goapp.ValidateHTTPResp(resp, 100); err != nil {
		return fmt.Errorf("can't invoke '%s': %w", req.URL.String(), err)
	}
	res := &loadResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return err
	}
	if !res.Loaded {
		return fmt.Errorf("model not loaded: %s", res.Error)
	}
	return nil
}

// Transcribe sends audio as a multipart upload and decodes the word-level
// result.
func (c *Client) Transcribe(ctx context.Context, input Request) (*Result, error) {
	defer utils.MeasureTime("transcribe", time.Now())
	ctx, cancelF := context.WithTimeout(ctx, c.timeout)
	defer cancelF()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", input.Model); err != nil {
		return nil, err
	}
	if input.Explicit {
		if err := mw.WriteField("start", strconv.FormatFloat(input.Start, 'f', -1, 64)); err != nil {
			return nil, err
		}
		if err := mw.WriteField("end", strconv.FormatFloat(input.End, 'f', -1, 64)); err != nil {
			return nil, err
		}
	}
	fw, err := mw.CreateFormFile("file", input.Name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(input.Audio); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/transcribe", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	if err := goapp.ValidateHTTPResp(resp, 100); err != nil {
		return nil, fmt.Errorf("can't invoke '%s': %w", req.URL.String(), err)
	}
	res := &wireResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("backend failure: %s", res.Error)
	}
	goapp.Log.Debug().Int("words", len(res.Words)).Str("lang", res.Language).Msg("transcribed")
	return mapResult(res, input), nil
}

func mapResult(res *wireResponse, input Request) *Result {
	offset := decimal.Zero
	if input.Explicit {
		offset = decimal.NewFromFloat(input.Start)
	}
	words := make([]transcript.WordTimestamp, 0, len(res.Words))
	for _, w := range res.Words {
		words = append(words, transcript.WordTimestamp{
			Word:  w.Word,
			Start: w.Start.Add(offset).InexactFloat64(),
			End:   w.End.Add(offset).InexactFloat64(),
		})
	}
	return &Result{
		Text:     res.Text,
		Words:    words,
		Duration: res.Duration.InexactFloat64(),
		Language: res.Language,
	}
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1000))
	_ = resp.Body.Close()
}

func newTransport() http.RoundTripper {
	res := http.DefaultTransport.(*http.Transport).Clone()
	res.MaxConnsPerHost = 5
	res.MaxIdleConns = 2
	res.MaxIdleConnsPerHost = 2
	res.IdleConnTimeout = 90 * time.Second
	return res
}
