package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"

	hertzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
)

// Client implements ports.WorldClient against the game server's HTTP API.
// Authentication is a bearer token; the character id comes back from
// /api/me and keys every later call.
type Client struct {
	base    string
	token   string
	charID  string
	http    *hertzclient.Client
	timeout time.Duration
	newKey  func() string
}

func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc, err := hertzclient.NewClient(
		hertzclient.WithDialTimeout(3 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("build http client: %w", err)
	}
	return &Client{
		base:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http:    hc,
		timeout: timeout,
		newKey:  func() string { return uuid.NewString() },
	}, nil
}

func (c *Client) Me(ctx context.Context) (world.Profile, error) {
	var out struct {
		world.Profile
		Error string `json:"error,omitempty"`
	}
	status, err := c.do(ctx, consts.MethodGet, "/api/me", nil, &out)
	if err != nil {
		return world.Profile{}, err
	}
	if status != http.StatusOK || out.Error != "" {
		return world.Profile{}, &ports.RejectedError{Reason: nonEmpty(out.Error, fmt.Sprintf("status %d", status))}
	}
	c.charID = out.Profile.ID
	return out.Profile, nil
}

func (c *Client) Look(ctx context.Context) (world.Snapshot, error) {
	var out lookResponse
	status, err := c.do(ctx, consts.MethodGet, "/api/look/"+c.charID, nil, &out)
	if err != nil {
		return world.Snapshot{}, err
	}
	if status != http.StatusOK || out.Error != "" {
		return world.Snapshot{}, &ports.RejectedError{Reason: nonEmpty(out.Error, fmt.Sprintf("status %d", status))}
	}
	return out.toDomain(), nil
}

func (c *Client) Submit(ctx context.Context, kind ports.ActionKind, params ports.ActionParams) (ports.Outcome, error) {
	body := actionRequest{
		Action:         string(kind),
		IdempotencyKey: c.newKey(),
		Direction:      string(params.Direction),
		Message:        params.Message,
		IsGoodbye:      params.IsGoodbye,
		TargetID:       params.TargetID,
		ListenerID:     params.ListenerID,
	}
	var out actionResponse
	status, err := c.do(ctx, consts.MethodPost, "/api/action/"+c.charID, body, &out)
	if err != nil {
		return ports.Outcome{}, err
	}
	if status >= http.StatusInternalServerError {
		return ports.Outcome{}, fmt.Errorf("%w: status %d", ports.ErrUnavailable, status)
	}
	if status != http.StatusOK || out.Error != "" {
		return ports.Outcome{}, &ports.RejectedError{
			Reason:        nonEmpty(out.Error, fmt.Sprintf("status %d", status)),
			CooldownTicks: out.CooldownTicks,
		}
	}
	outcome := ports.Outcome{Accepted: true}
	if out.XP != nil {
		outcome.LeveledUp = out.XP.LeveledUp
		outcome.NewLevel = out.XP.NewLevel
	}
	return outcome, nil
}

func (c *Client) SaveSummary(ctx context.Context, summary ports.StoredSummary) (bool, error) {
	body := summaryRecord{
		PeerID: summary.PeerID,
		Title:  summary.Title,
		Body:   summary.Body,
		Topics: summary.Topics,
	}
	var out saveSummaryResponse
	status, err := c.do(ctx, consts.MethodPost, "/api/memories/"+c.charID, body, &out)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK || out.Error != "" {
		return false, &ports.RejectedError{Reason: nonEmpty(out.Error, fmt.Sprintf("status %d", status))}
	}
	return out.OK, nil
}

func (c *Client) ListSummaries(ctx context.Context) ([]ports.StoredSummary, error) {
	var out struct {
		Error     string          `json:"error,omitempty"`
		Summaries []summaryRecord `json:"summaries"`
	}
	status, err := c.do(ctx, consts.MethodGet, "/api/memories/"+c.charID, nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || out.Error != "" {
		return nil, &ports.RejectedError{Reason: nonEmpty(out.Error, fmt.Sprintf("status %d", status))}
	}
	sums := make([]ports.StoredSummary, 0, len(out.Summaries))
	for _, s := range out.Summaries {
		sums = append(sums, ports.StoredSummary{
			PeerID:    s.PeerID,
			Title:     s.Title,
			Body:      s.Body,
			Topics:    s.Topics,
			CreatedAt: time.Unix(s.CreatedAt, 0),
		})
	}
	return sums, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.base + path)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		req.SetBody(raw)
		req.Header.SetContentTypeBytes([]byte("application/json"))
	}

	if err := c.http.DoTimeout(ctx, req, resp, c.timeout); err != nil {
		return 0, fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
	}

	status := resp.StatusCode()
	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return status, fmt.Errorf("%w: decode response: %v", ports.ErrUnavailable, err)
		}
	}
	return status, nil
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
