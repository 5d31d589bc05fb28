package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type ResultEntry struct {
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
	When  string `json:"when"`
}

type ScoreSync struct {
	enabled bool
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewScoreSyncFromEnv(enabled bool) *ScoreSync {
	baseURL := strings.TrimSpace(os.Getenv("BLOCKFALL_SCORE_API_URL"))
	envEnabled := strings.EqualFold(strings.TrimSpace(os.Getenv("BLOCKFALL_SCORE_SYNC")), "true")
	if baseURL == "" || !(enabled && envEnabled) {
		return nil
	}
	return &ScoreSync{
		enabled: true,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(os.Getenv("BLOCKFALL_SCORE_API_KEY")),
		client: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

func (s *ScoreSync) Enabled() bool {
	return s != nil && s.enabled
}

func (s *ScoreSync) FetchBestCmd() tea.Cmd {
	return func() tea.Msg {
		if s == nil || !s.enabled {
			return remoteBestMsg{}
		}
		req, err := http.NewRequest(http.MethodGet, s.baseURL+"/scores/best", nil)
		if err != nil {
			return remoteBestMsg{err: err}
		}
		if s.apiKey != "" {
			req.Header.Set("X-Api-Key", s.apiKey)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return remoteBestMsg{err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return remoteBestMsg{err: errUnexpectedStatus(resp.StatusCode)}
		}
		var record highScoreRecord
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return remoteBestMsg{err: err}
		}
		return remoteBestMsg{best: record.Best, found: true}
	}
}

func (s *ScoreSync) UploadResultCmd(entry ResultEntry) tea.Cmd {
	return func() tea.Msg {
		if s == nil || !s.enabled {
			return resultUploadedMsg{}
		}
		payload, err := json.Marshal(entry)
		if err != nil {
			return resultUploadedMsg{err: err}
		}
		req, err := http.NewRequest(http.MethodPost, s.baseURL+"/scores", bytes.NewReader(payload))
		if err != nil {
			return resultUploadedMsg{err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		if s.apiKey != "" {
			req.Header.Set("X-Api-Key", s.apiKey)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return resultUploadedMsg{err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return resultUploadedMsg{err: errUnexpectedStatus(resp.StatusCode)}
		}
		return resultUploadedMsg{}
	}
}

type statusError int

func (s statusError) Error() string {
	return "unexpected status: " + http.StatusText(int(s))
}

func errUnexpectedStatus(code int) error {
	return statusError(code)
}
