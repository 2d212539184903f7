package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hackhub/hackhub-api/internal/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client talks to the Gemini generateContent API. When no API key is
// configured every method falls back to a canned response, so the
// endpoints stay usable in local setups.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL overrides the API host, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// Chat answers a free-form question with project context prepended.
func (c *Client) Chat(ctx context.Context, projectContext, message string) (string, error) {
	if !c.IsConfigured() {
		return "AI assistant is not configured. Set GEMINI_API_KEY to enable it.", nil
	}

	prompt := fmt.Sprintf(
		"You are a helpful assistant for a hackathon team.\n\nProject context:\n%s\n\nQuestion: %s",
		projectContext, message,
	)
	return c.generate(ctx, prompt)
}

// TaskSuggestion is one generated task from a project description.
type TaskSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// GenerateTasks asks the model for a task breakdown of a project
// description and parses the JSON array it returns.
func (c *Client) GenerateTasks(ctx context.Context, description string) ([]TaskSuggestion, error) {
	if !c.IsConfigured() {
		return []TaskSuggestion{
			{Title: "Set up project skeleton", Description: "Create the repository, CI and base structure.", Priority: "HIGH"},
			{Title: "Build core feature", Description: "Implement the main functionality described in the project.", Priority: "HIGH"},
			{Title: "Prepare demo", Description: "Record a demo and prepare the submission materials.", Priority: "MEDIUM"},
		}, nil
	}

	prompt := fmt.Sprintf(
		"Break the following hackathon project into 3 to 7 concrete tasks. "+
			"Respond with ONLY a JSON array, each element an object with "+
			"\"title\", \"description\" and \"priority\" (LOW, MEDIUM, HIGH or URGENT).\n\nProject: %s",
		description,
	)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggestions []TaskSuggestion
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse generated tasks: %w", err)
	}
	return suggestions, nil
}

// ExplainSnippet returns a plain-language explanation of a code snippet.
func (c *Client) ExplainSnippet(ctx context.Context, language, code string) (string, error) {
	if !c.IsConfigured() {
		return "AI assistant is not configured. Set GEMINI_API_KEY to enable it.", nil
	}

	prompt := fmt.Sprintf(
		"Explain the following %s code snippet in plain language. Be concise.\n\n```%s\n%s\n```",
		language, language, code,
	)
	return c.generate(ctx, prompt)
}

// SummarizeProject produces a short status summary from project data.
func (c *Client) SummarizeProject(ctx context.Context, projectContext string) (string, error) {
	if !c.IsConfigured() {
		return "AI assistant is not configured. Set GEMINI_API_KEY to enable it.", nil
	}

	prompt := fmt.Sprintf(
		"Summarize the current status of this hackathon project in a few sentences, highlighting progress and blockers.\n\n%s",
		projectContext,
	)
	return c.generate(ctx, prompt)
}

// stripCodeFences removes a surrounding markdown code fence, which the
// model often wraps around JSON output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
