package news

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"time"
)

// og:image appears in either attribute order in the wild.
var (
	ogImagePropertyFirst = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:image["'][^>]*content=["']([^"']+)["']`)
	ogImageContentFirst  = regexp.MustCompile(`(?i)<meta[^>]*content=["']([^"']+)["'][^>]*property=["']og:image["']`)
)

const ogFetchLimit = 512 * 1024

// fetchOGImage scrapes the og:image URL from a story page. Any failure
// returns an empty string; preview images are cosmetic.
func (s *Service) fetchOGImage(ctx context.Context, pageURL string) string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NewsBot/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, ogFetchLimit))
	if err != nil {
		return ""
	}

	if m := ogImagePropertyFirst.FindSubmatch(html); m != nil {
		return string(m[1])
	}
	if m := ogImageContentFirst.FindSubmatch(html); m != nil {
		return string(m[1])
	}
	return ""
}
