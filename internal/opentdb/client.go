package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://opentdb.com/api.php"
	DefaultAmount  = 10
	TypeMultiple   = "multiple"
)

// ErrFetch wraps every failure to obtain a usable batch of questions.
var ErrFetch = errors.New("fetch questions failed")

// RawQuestion mirrors the OpenTriviaDB question payload. Text fields arrive
// HTML-entity encoded.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// ResponseCodeError reports a non-zero response_code from the API.
type ResponseCodeError struct {
	Code int
}

func (e *ResponseCodeError) Error() string {
	return fmt.Sprintf("opentdb response_code=%d", e.Code)
}

// StatusError reports a non-200 HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opentdb returned status %d", e.StatusCode)
}

type Client struct {
	baseURL      string
	questionType string
	httpClient   *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithQuestionType restricts the batch to one question type. An empty value
// asks for any type.
func WithQuestionType(questionType string) Option {
	return func(c *Client) {
		c.questionType = strings.TrimSpace(questionType)
	}
}

func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := &Client{
		baseURL:      DefaultBaseURL,
		questionType: TypeMultiple,
		httpClient:   httpClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) FetchQuestions(ctx context.Context, amount int) ([]RawQuestion, error) {
	if amount <= 0 {
		amount = DefaultAmount
	}

	query := url.Values{}
	query.Set("amount", strconv.Itoa(amount))
	if c.questionType != "" {
		query.Set("type", c.questionType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrFetch, &StatusError{StatusCode: resp.StatusCode})
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrFetch, err)
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, &ResponseCodeError{Code: payload.ResponseCode})
	}

	return payload.Results, nil
}
