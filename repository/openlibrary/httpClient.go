package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"digitallibrary/model"
	"digitallibrary/util/httpx"
	"digitallibrary/util/random"
)

type httpRepo struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
}

// NewHTTP builds a subject-API client with a polite request rate and bounded
// retries for 429/5xx responses.
func NewHTTP(baseURL string) Repo {
	return &httpRepo{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		client:     httpx.Client(),
		limiter:    rate.NewLimiter(rate.Every(time.Second/4), 1),
		maxRetries: 2,
		userAgent:  "digitallibrary/1.0",
	}
}

// work is one record of /subjects/{subject}.json
type work struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	FirstSentence    string `json:"first_sentence"`
	CoverID          int64  `json:"cover_id"`
	FirstPublishYear int    `json:"first_publish_year"`
}

type subjectResponse struct {
	Works []work `json:"works"`
}

func (r *httpRepo) BySubject(ctx context.Context, subject string, limit int) ([]model.Book, error) {
	u := fmt.Sprintf("%s/subjects/%s.json?limit=%d", r.baseURL, url.PathEscape(subject), limit)

	var res subjectResponse
	if err := r.get(ctx, u, &res); err != nil {
		return nil, err
	}

	books := make([]model.Book, 0, len(res.Works))
	for _, w := range res.Works {
		if w.Key == "" || w.Title == "" {
			continue
		}
		books = append(books, mapWork(subject, w))
	}
	return books, nil
}

// mapWork turns one subject-API work into a fully populated Book. Missing data
// is defaulted; year falls back to 2020, pages and rating are synthesized, and
// roughly 70% of the records are marked free.
func mapWork(subject string, w work) model.Book {
	author := model.UnknownAuthor
	if len(w.Authors) > 0 && w.Authors[0].Name != "" {
		author = w.Authors[0].Name
	}

	desc := w.FirstSentence
	if desc == "" {
		desc = "No description available."
	}

	cover := model.PlaceholderCover
	if w.CoverID != 0 {
		cover = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", w.CoverID)
	}

	year := w.FirstPublishYear
	if year == 0 {
		year = 2020
	}

	archive := "https://archive.org/download/" + strings.TrimPrefix(w.Key, "/works/") + "/"

	return model.Book{
		ID:          w.Key,
		Title:       w.Title,
		Author:      author,
		Description: desc,
		Genre:       subject,
		Language:    "en",
		Cover:       cover,
		PDFURL:      archive,
		DownloadURL: archive,
		Year:        year,
		Pages:       random.Pages(),
		Rating:      random.Rating(),
		Free:        random.Bool(0.7),
	}
}

func (r *httpRepo) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= r.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", r.userAgent)

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}
