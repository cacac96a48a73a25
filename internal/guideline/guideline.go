// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package guideline finds clinical guideline pages on a single trusted site
// by scraping a search engine's HTML results page with a site: filter.
//
// The search endpoint has no documented contract. When its markup changes
// the finder stops matching and reports no links; it never returns an error.
package guideline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/httputil"
	"github.com/pdiddy/sympatico/pkg/types"
)

// resultSelector matches organic result anchors on the HTML search page.
const resultSelector = "a.result__a"

// Finder looks up guideline links for a condition.
type Finder struct {
	Client *http.Client
	Config types.GuidelineConfig
	Log    *zap.Logger
}

// NewFinder returns a Finder with defaults filled in for unset config fields.
func NewFinder(client *http.Client, cfg types.GuidelineConfig, log *zap.Logger) *Finder {
	def := types.DefaultConfig().Guideline
	if cfg.Domain == "" {
		cfg.Domain = def.Domain
	}
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = def.SearchURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Finder{Client: client, Config: cfg, Log: log.Named("guideline")}
}

// Find returns up to maxResults links on the trusted host, in the order the
// search page lists them. maxResults <= 0 uses the configured default. Any
// failure yields an unavailable lookup with no items.
func (f *Finder) Find(ctx context.Context, condition string, maxResults int) types.Lookup[string] {
	if maxResults <= 0 {
		maxResults = f.Config.MaxResults
	}

	links, err := f.find(ctx, condition, maxResults)
	if err != nil {
		f.Log.Warn("guideline lookup unavailable", zap.String("condition", condition), zap.Error(err))
		return types.Unavailable[string]()
	}
	f.Log.Debug("guideline lookup complete", zap.String("condition", condition), zap.Int("links", len(links)))
	return types.Found(links)
}

func (f *Finder) find(ctx context.Context, condition string, maxResults int) ([]string, error) {
	searchURL, err := f.searchURL(condition)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("User-Agent", f.Config.UserAgent)

	body, err := httputil.Get(ctx, f.Client, searchURL, header)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return extractLinks(doc, f.Config.Host, maxResults), nil
}

// searchURL builds "<SearchURL>?q=<condition> site:<domain>".
func (f *Finder) searchURL(condition string) (string, error) {
	u, err := url.Parse(f.Config.SearchURL)
	if err != nil {
		return "", fmt.Errorf("parsing search URL: %w", err)
	}
	q := u.Query()
	q.Set("q", buildQuery(condition, f.Config.Domain))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// buildQuery scopes the condition to the trusted domain.
func buildQuery(condition, domain string) string {
	return strings.TrimSpace(condition) + " site:" + domain
}

// extractLinks walks organic result anchors in document order and keeps the
// ones whose target is an https URL on host, stopping at max.
func extractLinks(doc *goquery.Document, host string, max int) []string {
	links := []string{}
	doc.Find(resultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if target, ok := trustedTarget(href, host); ok {
			links = append(links, target)
		}
		return len(links) < max
	})
	return links
}

// trustedTarget resolves href to its destination, unwrapping the search
// engine's "/l/?uddg=" redirect, and reports whether it is an https URL on host.
func trustedTarget(href, host string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if dest := u.Query().Get("uddg"); dest != "" && strings.HasPrefix(u.Path, "/l/") {
		if u, err = url.Parse(dest); err != nil {
			return "", false
		}
	}
	if u.Scheme != "https" || !strings.EqualFold(u.Host, host) {
		return "", false
	}
	return u.String(), true
}
