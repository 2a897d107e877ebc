package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

var (
	ErrNoBaseURL = errors.New("API_URL is not configured")
	ErrNotJSON   = errors.New("invalid response format: expected JSON")
)

// HTTPError is a non-2xx response that was not retried.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NotFound reports whether err is a 404 from the API.
func NotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// APIClient talks JSON to the fleet API through the retrying Client.
type APIClient struct {
	BaseURL string
	Token   string
	Fetch   *Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Fetch:   NewClient(),
	}
}

func (a *APIClient) Get(ctx context.Context, path string, out any) error {
	return a.Call(ctx, http.MethodGet, path, nil, out)
}

func (a *APIClient) Post(ctx context.Context, path string, body, out any) error {
	return a.Call(ctx, http.MethodPost, path, body, out)
}

func (a *APIClient) Put(ctx context.Context, path string, body, out any) error {
	return a.Call(ctx, http.MethodPut, path, body, out)
}

func (a *APIClient) Delete(ctx context.Context, path string) error {
	return a.Call(ctx, http.MethodDelete, path, nil, nil)
}

// Call sends body as JSON and decodes a JSON reply into out (when non-nil).
func (a *APIClient) Call(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := a.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.Fetch.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return ErrNotJSON
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Download returns the raw body and its content type.
func (a *APIClient) Download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := a.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.Fetch.Do(ctx, req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Upload posts a single multipart file under the "file" field.
func (a *APIClient) Upload(ctx context.Context, path, fileName string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := a.newRequest(ctx, http.MethodPost, path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := a.Fetch.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *APIClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if a.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
	return req, nil
}

// checkStatus turns a non-2xx response into an HTTPError, preferring the
// message/error field of a JSON body and falling back to the text body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(raw, &body) == nil {
			switch {
			case body.Message != "":
				msg = body.Message
			case body.Error != "":
				msg = body.Error
			case body.Detail != "":
				msg = body.Detail
			}
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		msg = text
	}

	return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
}
