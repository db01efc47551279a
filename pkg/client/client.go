// Package client provides a Go client for the egoroff navigation API.
//
// It covers the read side (navigation, full paths, title paths, section
// lookup) and the system side (site map reload, task status). Errors returned
// by the server with a status >= 400 surface as *APIError.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"egoroff.spb.ru/pkg/navigation"
)

// APIError represents an error returned by the navigation API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Navigation holds the top level sections and the breadcrumb trail of a page.
type Navigation struct {
	Sections    []*navigation.SiteSection `json:"sections,omitempty"`
	Breadcrumbs []*navigation.SiteSection `json:"breadcrumbs,omitempty"`
}

// Section describes one section and its canonical path.
type Section struct {
	ID       string                    `json:"id"`
	Path     string                    `json:"path"`
	Icon     string                    `json:"icon,omitempty"`
	Title    string                    `json:"title,omitempty"`
	Descr    string                    `json:"descr,omitempty"`
	Keywords string                    `json:"keywords,omitempty"`
	Children []*navigation.SiteSection `json:"children,omitempty"`
}

type pathResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

type titlePathResponse struct {
	URI       string `json:"uri"`
	TitlePath string `json:"title_path"`
}

type sectionListResponse struct {
	Sections []Section `json:"sections"`
}

type reloadResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// Task represents an asynchronous site map reload on the server.
type Task struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ProgressMessage string `json:"progress_message,omitempty"`
	Error           string `json:"error,omitempty"`

	client *Client
}

// Client talks to a running egoroff server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the server at baseURL. token is sent as a bearer
// token on /system endpoints and may be empty for read-only use.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// jsonRequest executes a request against the API and returns the raw body.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" && strings.HasPrefix(endpoint, "/system/") {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

func getJSON[T any](c *Client, endpoint string) (T, error) {
	var v T
	body, err := c.jsonRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("invalid JSON response for %s: %w", endpoint, err)
	}
	return v, nil
}

// Navigation returns the navigation block for the page at uri.
func (c *Client) Navigation(uri string) (*Navigation, error) {
	nav, err := getJSON[Navigation](c, "/api/v2/navigation/?uri="+url.QueryEscape(uri))
	if err != nil {
		return nil, err
	}
	return &nav, nil
}

// FullPath returns the canonical path of the section id.
func (c *Client) FullPath(id string) (string, error) {
	resp, err := getJSON[pathResponse](c, "/api/v2/navigation/path/"+url.PathEscape(id))
	if err != nil {
		return "", err
	}
	return resp.Path, nil
}

// TitlePath returns the page title chain for uri.
func (c *Client) TitlePath(uri string) (string, error) {
	resp, err := getJSON[titlePathResponse](c, "/api/v2/navigation/title?uri="+url.QueryEscape(uri))
	if err != nil {
		return "", err
	}
	return resp.TitlePath, nil
}

// Section returns one section with its children.
func (c *Client) Section(id string) (*Section, error) {
	s, err := getJSON[Section](c, "/api/v2/navigation/section/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Sections lists the sections whose id starts with prefix.
func (c *Client) Sections(prefix string) ([]Section, error) {
	resp, err := getJSON[sectionListResponse](c, "/api/v2/navigation/sections?prefix="+url.QueryEscape(prefix))
	if err != nil {
		return nil, err
	}
	return resp.Sections, nil
}

// Reload asks the server to reload its site map and returns the reload task.
func (c *Client) Reload() (*Task, error) {
	body, err := c.jsonRequest(http.MethodPost, "/system/reload", nil)
	if err != nil {
		return nil, err
	}
	var resp reloadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON response for reload: %w", err)
	}
	return &Task{ID: resp.TaskID, Status: resp.Status, client: c}, nil
}

// GetTaskStatus fetches the current state of a task.
func (c *Client) GetTaskStatus(taskID string) (*Task, error) {
	task, err := getJSON[Task](c, "/system/tasks/"+url.PathEscape(taskID))
	if err != nil {
		return nil, err
	}
	task.client = c
	return &task, nil
}

// Refresh updates the task's status by querying the server.
func (t *Task) Refresh() error {
	if t.client == nil {
		return fmt.Errorf("client is not associated with the task")
	}
	updated, err := t.client.GetTaskStatus(t.ID)
	if err != nil {
		return err
	}
	t.Status = updated.Status
	t.ProgressMessage = updated.ProgressMessage
	t.Error = updated.Error
	return nil
}

// Wait blocks until the task finishes, polling its status every interval.
func (t *Task) Wait(interval, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-timer.C:
			return fmt.Errorf("timeout exceeded while waiting for task %s", t.ID)
		case <-ticker.C:
			if err := t.Refresh(); err != nil {
				return err
			}
			switch t.Status {
			case "completed":
				return nil
			case "failed":
				return fmt.Errorf("task %s failed with error: %s", t.ID, t.Error)
			case "running", "started":
			default:
				return fmt.Errorf("unknown task status: %s", t.Status)
			}
		}
	}
}
