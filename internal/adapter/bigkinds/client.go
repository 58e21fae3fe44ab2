// Package bigkinds fetches recent economy articles from the BigKinds news search API.
package bigkinds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newsquiz/internal/config"
	"newsquiz/internal/domain"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var requestFields = []string{
	"title", "content", "published_at", "provider", "category",
	"hilight", "news_id", "url", "byline", "provider_link_page",
}

type searchRequest struct {
	AccessKey string          `json:"access_key"`
	Argument  searchArguments `json:"argument"`
}

type searchArguments struct {
	Query       string            `json:"query"`
	PublishedAt publishedRange    `json:"published_at"`
	Provider    []string          `json:"provider"`
	Category    []string          `json:"category"`
	Sort        map[string]string `json:"sort"`
	Hilight     int               `json:"hilight"`
	ReturnFrom  int               `json:"return_from"`
	ReturnSize  int               `json:"return_size"`
	Fields      []string          `json:"fields"`
}

type publishedRange struct {
	From  string `json:"from"`
	Until string `json:"until"`
}

type searchResponse struct {
	Result       *int `json:"result"`
	ReturnObject struct {
		Documents []document `json:"documents"`
	} `json:"return_object"`
}

type document struct {
	NewsID           string `json:"news_id"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	PublishedAt      string `json:"published_at"`
	Provider         string `json:"provider"`
	ProviderLinkPage string `json:"provider_link_page"`
}

// LinkResolver finds the publisher URL of an article that came without one.
type LinkResolver interface {
	ResolveLink(ctx context.Context, newsID string) string
}

// Client implements domain.ArticleSource against the BigKinds search endpoint.
type Client struct {
	httpClient *http.Client
	cfg        config.BigKindsConfig
	links      LinkResolver
	now        domain.Clock
	loc        *time.Location
	logger     *zap.Logger
}

// NewClient creates a search client. The publication window is computed in
// loc so it ends on the same calendar day the quiz is stamped with.
func NewClient(cfg config.BigKindsConfig, links LinkResolver, clock domain.Clock, loc *time.Location, logger *zap.Logger) *Client {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		links:      links,
		now:        clock,
		loc:        loc,
		logger:     logger,
	}
}

// FetchArticles returns up to count articles published in the trailing window, newest first.
func (c *Client) FetchArticles(ctx context.Context, count int) ([]domain.Article, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.NewUpstreamError("BIGKINDS_API_KEY is not set", nil)
	}

	body, err := json.Marshal(c.buildRequest(count))
	if err != nil {
		return nil, domain.NewInternalError("failed to encode search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewInternalError("failed to build search request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Fetching articles", zap.Int("count", count), zap.String("provider", c.cfg.Provider))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("bigkinds request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to read bigkinds response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError(fmt.Sprintf("bigkinds returned status %d", resp.StatusCode), nil)
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.NewUpstreamError("bigkinds response is not JSON", err)
	}
	if parsed.Result == nil || *parsed.Result != 0 {
		code := "missing"
		if parsed.Result != nil {
			code = fmt.Sprint(*parsed.Result)
		}
		return nil, domain.NewUpstreamError(fmt.Sprintf("bigkinds returned error result: %s", code), nil)
	}

	articles := make([]domain.Article, 0, len(parsed.ReturnObject.Documents))
	for _, doc := range parsed.ReturnObject.Documents {
		articles = append(articles, c.toArticle(ctx, doc))
	}

	c.logger.Info("Fetched articles", zap.Int("count", len(articles)))
	return articles, nil
}

func (c *Client) buildRequest(count int) searchRequest {
	until := c.now().In(c.loc)
	from := until.AddDate(0, 0, -c.cfg.WindowDays)

	return searchRequest{
		AccessKey: c.cfg.APIKey,
		Argument: searchArguments{
			Query: "",
			PublishedAt: publishedRange{
				From:  from.Format(dateLayout),
				Until: until.Format(dateLayout),
			},
			Provider:   []string{c.cfg.Provider},
			Category:   []string{c.cfg.Category},
			Sort:       map[string]string{"date": "desc"},
			Hilight:    200,
			ReturnFrom: 0,
			ReturnSize: count,
			Fields:     requestFields,
		},
	}
}

func (c *Client) toArticle(ctx context.Context, doc document) domain.Article {
	url := stripQuery(doc.ProviderLinkPage)
	if url == "" && c.links != nil {
		url = c.links.ResolveLink(ctx, doc.NewsID)
	}

	return domain.Article{
		NewsID:      doc.NewsID,
		Title:       doc.Title,
		Body:        doc.Content,
		PublishedAt: parsePublishedAt(doc.PublishedAt),
		Provider:    doc.Provider,
		URL:         url,
	}
}

func stripQuery(rawURL string) string {
	if i := strings.Index(rawURL, "?"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// parsePublishedAt returns the zero time for values in none of the known layouts.
func parsePublishedAt(raw string) time.Time {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

var _ domain.ArticleSource = (*Client)(nil)
