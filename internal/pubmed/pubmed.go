// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed finds literature citations for a condition through the NCBI
// E-utilities API: esearch resolves the term to PubMed identifiers, then
// efetch returns the article records for those identifiers.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/httputil"
	"github.com/pdiddy/sympatico/pkg/types"
)

const (
	// maxQueryTokens bounds the esearch term length.
	maxQueryTokens = 10

	// articleURLBase is the canonical citation link prefix.
	articleURLBase = "https://pubmed.ncbi.nlm.nih.gov/"
)

// Finder looks up PubMed citations for a condition.
type Finder struct {
	Client *http.Client
	Config types.PubMedConfig
	Log    *zap.Logger
}

// NewFinder returns a Finder with defaults filled in for unset config fields.
func NewFinder(client *http.Client, cfg types.PubMedConfig, log *zap.Logger) *Finder {
	def := types.DefaultConfig().PubMed
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
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
	return &Finder{Client: client, Config: cfg, Log: log.Named("pubmed")}
}

// Find returns up to maxResults citations in PubMed relevance order.
// maxResults <= 0 uses the configured default. When the search step finds no
// identifiers the fetch step is skipped. Any failure yields an unavailable
// lookup with no items.
func (f *Finder) Find(ctx context.Context, condition string, maxResults int) types.Lookup[types.Citation] {
	if maxResults <= 0 {
		maxResults = f.Config.MaxResults
	}

	citations, err := f.find(ctx, condition, maxResults)
	if err != nil {
		f.Log.Warn("citation lookup unavailable", zap.String("condition", condition), zap.Error(err))
		return types.Unavailable[types.Citation]()
	}
	f.Log.Debug("citation lookup complete", zap.String("condition", condition), zap.Int("citations", len(citations)))
	return types.Found(citations)
}

func (f *Finder) find(ctx context.Context, condition string, maxResults int) ([]types.Citation, error) {
	term := truncateQuery(condition, maxQueryTokens)
	if term == "" {
		return nil, nil
	}

	ids, err := f.search(ctx, term, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	citations, err := f.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(citations) > maxResults {
		citations = citations[:maxResults]
	}
	return citations, nil
}

// truncateQuery keeps the first n whitespace-delimited tokens of s.
func truncateQuery(s string, n int) string {
	tokens := strings.Fields(s)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}

// search runs esearch and returns the identifier list.
func (f *Finder) search(ctx context.Context, term string, maxResults int) ([]string, error) {
	params := f.baseParams()
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("term", term)
	params.Set("retmode", "json")

	body, err := httputil.Get(ctx, f.Client, f.endpoint("esearch.fcgi", params), f.header())
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if sr.Result.Error != "" {
		return nil, fmt.Errorf("esearch error: %s", sr.Result.Error)
	}
	return sr.Result.IDList, nil
}

// fetch runs efetch for ids and converts each PubmedArticle to a Citation.
func (f *Finder) fetch(ctx context.Context, ids []string) ([]types.Citation, error) {
	params := f.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := httputil.Get(ctx, f.Client, f.endpoint("efetch.fcgi", params), f.header())
	if err != nil {
		return nil, fmt.Errorf("efetch request: %w", err)
	}

	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	citations := make([]types.Citation, 0, len(set.Articles))
	for _, a := range set.Articles {
		citations = append(citations, types.Citation{
			Title: string(a.Title),
			Link:  articleURLBase + strings.TrimSpace(a.PMID),
		})
	}
	return citations, nil
}

func (f *Finder) baseParams() url.Values {
	params := url.Values{"db": {"pubmed"}}
	if f.Config.APIKey != "" {
		params.Set("api_key", f.Config.APIKey)
	}
	if f.Config.Tool != "" {
		params.Set("tool", f.Config.Tool)
	}
	if f.Config.Email != "" {
		params.Set("email", f.Config.Email)
	}
	return params
}

func (f *Finder) endpoint(name string, params url.Values) string {
	return strings.TrimSuffix(f.Config.BaseURL, "/") + "/" + name + "?" + params.Encode()
}

func (f *Finder) header() http.Header {
	h := http.Header{}
	h.Set("User-Agent", f.Config.UserAgent)
	return h
}

// esearch JSON structures.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
		Error  string   `json:"ERROR"`
	} `json:"esearchresult"`
}

// efetch XML structures.
type articleSet struct {
	Articles []article `xml:"PubmedArticle"`
}

type article struct {
	PMID  string    `xml:"MedlineCitation>PMID"`
	Title mixedText `xml:"MedlineCitation>Article>ArticleTitle"`
}

// mixedText collects all character data inside an element, flattening inline
// markup such as <i> or <sup> that PubMed allows in titles.
type mixedText string

func (t *mixedText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(tok)
		}
	}
	*t = mixedText(strings.Join(strings.Fields(b.String()), " "))
	return nil
}
