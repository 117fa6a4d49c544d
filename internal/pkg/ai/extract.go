package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/cache"
)

const (
	extractCacheKeyPrefix = "ai:extract:"
	extractCacheTTL       = 30 * time.Minute
	extractCharBudget     = 8000
	maxDownloadBytes      = 20 << 20
)

// Extractor pulls plain text out of a document's PDF file, best effort.
// Results are cached by source URL in an injected Store so repeated
// generations against the same document skip the download.
type Extractor struct {
	store      cache.Store
	httpClient *http.Client
	charBudget int
	ttl        time.Duration
}

func NewExtractor(store cache.Store) *Extractor {
	return &Extractor{
		store: store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		charBudget: extractCharBudget,
		ttl:        extractCacheTTL,
	}
}

// Extract downloads the PDF behind fileURL and returns its text, truncated
// to the character budget at a newline boundary. A cache hit skips the
// download entirely; a miss never fails the caller's request on its own,
// errors are surfaced but callers treat extraction as optional.
func (e *Extractor) Extract(ctx context.Context, fileURL string) (string, error) {
	key := extractCacheKeyPrefix + fileURL
	if cached, err := e.store.Lookup(key); err == nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download document: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return "", err
	}

	text, err := pdfToText(raw)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	text = truncateAtNewline(text, e.charBudget)
	_ = e.store.Put(key, text, e.ttl)
	return text, nil
}

func pdfToText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// truncateAtNewline cuts s to at most max characters, preferring the last
// newline before the limit so no line is cut in half.
func truncateAtNewline(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		return cut[:idx]
	}
	return cut
}
