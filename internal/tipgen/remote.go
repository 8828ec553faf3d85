package tipgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/sovet/pkg/entity"
	"golang.org/x/time/rate"
)

var ErrEmptyTip = errors.New("content service returned an empty tip")

type RemoteCfg struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// Requests per second allowed towards the content service
	RPS   float64
	Burst int
}

type remoteRequest struct {
	Goal       string `json:"goal"`
	Niche      string `json:"niche"`
	Experience string `json:"experience"`
}

// Remote asks an external content service for a tip.
type Remote struct {
	url     string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

func NewRemote(cfg RemoteCfg) *Remote {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	limit := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Remote{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (r *Remote) Generate(ctx context.Context, goal, niche string, experience entity.Experience) (entity.TipContent, error) {
	var tip entity.TipContent
	if err := r.limiter.Wait(ctx); err != nil {
		return tip, fmt.Errorf("waiting for content service quota: %w", err)
	}
	body, err := sonic.Marshal(remoteRequest{
		Goal:       goal,
		Niche:      niche,
		Experience: string(experience),
	})
	if err != nil {
		return tip, fmt.Errorf("encoding tip request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return tip, fmt.Errorf("building tip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return tip, fmt.Errorf("calling content service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return tip, fmt.Errorf("content service responded %d", resp.StatusCode)
	}
	if err = sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&tip); err != nil {
		return tip, fmt.Errorf("decoding tip response: %w", err)
	}
	if tip.Content == "" {
		return tip, ErrEmptyTip
	}
	return tip, nil
}
