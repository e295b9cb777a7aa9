package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
)

// TextFetchService retrieves raw source text: either from a URL or generated
// from a prompt by the text model.
type TextFetchService interface {
	FetchFromURL(ctx context.Context, url string) (string, error)
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}

type textFetchService struct {
	log        *logger.Logger
	ai         openai.Client
	httpClient *http.Client
}

// fetchBodyLimit caps how much of a remote page we will read.
const fetchBodyLimit = 2 << 20

func NewTextFetchService(log *logger.Logger, ai openai.Client) (TextFetchService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ai == nil {
		return nil, fmt.Errorf("openai client required")
	}
	return &textFetchService{
		log:        log.With("service", "TextFetchService"),
		ai:         ai,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (t *textFetchService) FetchFromURL(ctx context.Context, url string) (string, error) {
	ctx = ctxutil.Default(ctx)

	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("%w: url must not be empty", errs.ErrInvalidArgument)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &errs.UpstreamFetchError{URL: url, Err: err}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", &errs.UpstreamFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &errs.UpstreamFetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetchBodyLimit))
	if err != nil {
		return "", &errs.UpstreamFetchError{URL: url, Err: err}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", &errs.UpstreamFetchError{URL: url, Err: fmt.Errorf("empty response body")}
	}

	t.log.Debug("fetched source text", "url", url, "bytes", len(text))
	return text, nil
}

const generateSystem = `You write short French texts for language learners.
Respond with French prose only: no titles, no translations, no commentary.`

func (t *textFetchService) GenerateFromPrompt(ctx context.Context, prompt string) (string, error) {
	ctx = ctxutil.Default(ctx)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt must not be empty", errs.ErrInvalidArgument)
	}

	text, err := t.ai.GenerateText(ctx, generateSystem, prompt)
	if err != nil {
		return "", &errs.UpstreamFetchError{URL: "prompt", Err: err}
	}
	return strings.TrimSpace(text), nil
}
