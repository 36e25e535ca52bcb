package narrative

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"compintel/server/internal/models"
)

// Service calls the external text-generation API and falls back to the
// deterministic generator on any fault: missing key, transport error,
// unparsable output. Summarize never returns an error to the pipeline.
type Service struct {
	logger  *logrus.Logger
	client  *http.Client
	apiKey  string
	apiURL  string
	enabled bool
}

func NewService(logger *logrus.Logger, apiKey, apiURL string, timeout time.Duration) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		apiURL:  apiURL,
		enabled: apiKey != "",
	}
}

// Summarize returns strategy notes for the report, preferring the API and
// falling back on any failure. The result is always non-nil.
func (s *Service) Summarize(report *models.CompReport) *models.StrategyNotes {
	if !s.enabled {
		return Fallback(report)
	}

	notes, err := s.callAPI(report)
	if err != nil {
		s.logger.WithError(err).Warn("Narrative API call failed; using deterministic fallback")
		return Fallback(report)
	}
	return notes
}

type apiRequest struct {
	Type         string        `json:"type"`
	Model        string        `json:"model"`
	PromptObject apiPromptBody `json:"promptObject"`
}

type apiPromptBody struct {
	Prompt    string `json:"prompt"`
	IsMixed   bool   `json:"isMixed"`
	WebSearch bool   `json:"webSearch"`
}

type apiResponse struct {
	AIRecord struct {
		AIRecordDetail struct {
			ResultObject []string `json:"resultObject"`
		} `json:"aiRecordDetail"`
	} `json:"aiRecord"`
}

func (s *Service) callAPI(report *models.CompReport) (*models.StrategyNotes, error) {
	prompt, err := buildPrompt(report)
	if err != nil {
		return nil, err
	}

	payload := apiRequest{
		Type:  "CHAT_WITH_AI",
		Model: "gpt-4o-mini",
		PromptObject: apiPromptBody{
			Prompt: prompt,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal narrative request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build narrative request: %w", err)
	}
	req.Header.Set("API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narrative API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("narrative API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode narrative response: %w", err)
	}
	results := parsed.AIRecord.AIRecordDetail.ResultObject
	if len(results) == 0 || strings.TrimSpace(results[0]) == "" {
		return nil, errors.New("narrative API returned no text")
	}

	return parseNotes(results[0])
}

// parseNotes parses the model's JSON reply. Models sometimes wrap the object
// in a markdown code fence; strip it before decoding.
func parseNotes(text string) (*models.StrategyNotes, error) {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```") {
		clean = strings.ReplaceAll(clean, "```json", "")
		clean = strings.ReplaceAll(clean, "```", "")
		clean = strings.TrimSpace(clean)
	}

	var notes models.StrategyNotes
	if err := json.Unmarshal([]byte(clean), &notes); err != nil {
		return nil, fmt.Errorf("narrative reply was not valid JSON: %w", err)
	}
	if len(notes.Tactics) == 0 {
		return nil, errors.New("narrative reply missing tactics")
	}
	notes.Source = models.NarrativeSourceAPI
	return &notes, nil
}

func buildPrompt(report *models.CompReport) (string, error) {
	subset := map[string]interface{}{
		"address":              report.Address,
		"metrics":              report.Metrics,
		"permit_categories":    report.Categories,
		"construction_summary": report.Construction,
		"timeline_summary":     report.Timeline,
		"team_network":         report.Team,
	}
	data, err := json.MarshalIndent(subset, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report subset: %w", err)
	}

	return fmt.Sprintf(`You are a comp-intel analyst for a Los Angeles real estate developer.

Analyze the following property data and return ONLY valid JSON with this exact structure:
{"tactics": ["..."], "risks": ["..."], "insights": ["..."]}

- tactics: 3-6 bullets explaining construction strategy, permit approach, value-add methods
- risks: 2-3 bullets on challenges or red flags
- insights: 1-2 bullets on learnings from this comp pattern

DO NOT include any text outside the JSON object.

PROPERTY DATA:
%s`, string(data)), nil
}
