package bigkinds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const providerButtonText = "언론사URL"

var locationHrefPattern = regexp.MustCompile(`location\.href='([^']+)'`)

// DetailPageScraper reads the publisher link off the BigKinds article detail page.
// Any failure falls back to the detail page URL itself.
type DetailPageScraper struct {
	httpClient *http.Client
	detailURL  string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewDetailPageScraper creates a scraper. rps <= 0 disables rate limiting.
func NewDetailPageScraper(detailURL string, timeout time.Duration, rps float64, logger *zap.Logger) *DetailPageScraper {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailPageScraper{
		httpClient: &http.Client{Timeout: timeout},
		detailURL:  detailURL,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// DetailURL is the BigKinds page of an article.
func (s *DetailPageScraper) DetailURL(newsID string) string {
	return fmt.Sprintf("%s?newsId=%s", s.detailURL, url.QueryEscape(newsID))
}

func (s *DetailPageScraper) ResolveLink(ctx context.Context, newsID string) string {
	if newsID == "" {
		return ""
	}
	detail := s.DetailURL(newsID)

	link, err := s.scrape(ctx, detail)
	if err != nil {
		s.logger.Warn("Falling back to detail page URL", zap.String("news_id", newsID), zap.Error(err))
		return detail
	}

	s.logger.Debug("Resolved publisher link", zap.String("news_id", newsID), zap.String("url", link))
	return link
}

func (s *DetailPageScraper) scrape(ctx context.Context, detail string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detail, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("detail page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse detail page: %w", err)
	}

	var link string
	doc.Find("button, a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != providerButtonText {
			return true
		}
		onclick, _ := sel.Attr("onclick")
		if m := locationHrefPattern.FindStringSubmatch(onclick); m != nil {
			link = m[1]
			return false
		}
		return true
	})

	if link == "" {
		return "", fmt.Errorf("publisher link button not found")
	}
	return stripQuery(link), nil
}

var _ LinkResolver = (*DetailPageScraper)(nil)
