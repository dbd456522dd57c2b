// Package contest реализует клиент публичного REST API Яндекс.Контеста.
// Схема ответов — внешний контракт, которым этот сервис не владеет.
package contest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"admission-service/internal/domain"
)

// APIError — ошибка уровня API Контеста. Пробрасывается вызывающему
// без изменений; ретраи — ответственность вызывающей команды.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contest api: status %d: %s", e.StatusCode, e.Body)
}

// Client вызывает API Контеста по OAuth-токену.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создает клиент API Контеста.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    trimmed,
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// RegisterParticipant регистрирует логин в контесте.
// 201 — участник создан, 200 — уже был, 409 — дубликат регистрации;
// все три возвращаются кодом без ошибки, остальное — *APIError.
func (c *Client) RegisterParticipant(ctx context.Context, login string, contestID int64) (int, int64, error) {
	endpoint := fmt.Sprintf("%s/contests/%d/participants?login=%s",
		c.baseURL, contestID, url.QueryEscape(login))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create register request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("send register request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("read register response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Тело ответа — participant id числом.
		participantID, err := strconv.ParseInt(strings.TrimSpace(string(payload)), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("parse participant id %q: %w", payload, err)
		}
		return resp.StatusCode, participantID, nil
	case http.StatusConflict:
		// Дубликат: participant id в теле не приходит.
		return resp.StatusCode, 0, nil
	default:
		return 0, 0, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}
}

type standingsResponse struct {
	Titles []struct {
		Name string `json:"name"`
	} `json:"titles"`
	Rows []struct {
		ParticipantInfo struct {
			ID    int64  `json:"id"`
			Login string `json:"login"`
		} `json:"participantInfo"`
		Score          string `json:"score"`
		ProblemResults []struct {
			Score string `json:"score"`
		} `json:"problemResults"`
	} `json:"rows"`
}

// Standings возвращает страницу турнирной таблицы (нумерация страниц с 1).
func (c *Client) Standings(ctx context.Context, contestID int64, page, pageSize int) (*domain.StandingsPage, error) {
	endpoint := fmt.Sprintf("%s/contests/%d/standings?page=%d&pageSize=%d",
		c.baseURL, contestID, page, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create standings request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send standings request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read standings response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	var parsed standingsResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode standings response: %w", err)
	}

	result := &domain.StandingsPage{
		Titles: make([]string, len(parsed.Titles)),
		Rows:   make([]domain.StandingsRow, len(parsed.Rows)),
	}
	for i, title := range parsed.Titles {
		result.Titles[i] = title.Name
	}
	for i, row := range parsed.Rows {
		problemScores := make([]string, len(row.ProblemResults))
		for j, pr := range row.ProblemResults {
			problemScores[j] = pr.Score
		}
		result.Rows[i] = domain.StandingsRow{
			Login:         row.ParticipantInfo.Login,
			ParticipantID: row.ParticipantInfo.ID,
			Score:         row.Score,
			ProblemScores: problemScores,
		}
	}

	return result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "OAuth "+c.token)
	}
}
