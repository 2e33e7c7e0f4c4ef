package gutendex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"digitallibrary/model"
	"digitallibrary/util/httpx"
	"digitallibrary/util/random"
)

// BulkPageSize is how many records the single bulk fetch requests.
const BulkPageSize = 50

// Repo fetches the Project Gutenberg catalog through the Gutendex API.
type Repo interface {
	Bulk(ctx context.Context) ([]model.Book, error)
}

type httpRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string) Repo {
	return &httpRepo{baseURL: strings.TrimSuffix(baseURL, "/"), client: httpx.Client()}
}

// bulkResponse matches /books/
type bulkResponse struct {
	Results []struct {
		ID      int64  `json:"id"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Subjects      []string          `json:"subjects"`
		Formats       map[string]string `json:"formats"`
		DownloadCount int               `json:"download_count"`
	} `json:"results"`
}

func (r *httpRepo) Bulk(ctx context.Context) ([]model.Book, error) {
	u := fmt.Sprintf("%s/books/?languages=en&page_size=%d", r.baseURL, BulkPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gutendex bulk fetch: unexpected status %d", resp.StatusCode)
	}

	var out bulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	books := make([]model.Book, 0, len(out.Results))
	for _, rec := range out.Results {
		if rec.Title == "" {
			continue
		}

		author := model.UnknownAuthor
		if len(rec.Authors) > 0 && rec.Authors[0].Name != "" {
			author = rec.Authors[0].Name
		}

		desc := strings.Join(rec.Subjects, ", ")
		if desc == "" {
			desc = "Classic literature"
		}

		cover := rec.Formats["image/jpeg"]
		if cover == "" {
			cover = model.PlaceholderCover
		}

		// Heavily downloaded records are classics; give them an older year.
		year := 2000
		if rec.DownloadCount > 1000 {
			year = random.YearIn(1900, 100)
		}

		fallback := fmt.Sprintf("https://www.gutenberg.org/ebooks/%d", rec.ID)
		pdf := firstFormat(rec.Formats, "application/pdf", "text/html")
		if pdf == "" {
			pdf = fallback
		}
		download := firstFormat(rec.Formats, "application/pdf", "text/plain")
		if download == "" {
			download = fallback
		}

		books = append(books, model.Book{
			ID:          fmt.Sprintf("%d", rec.ID),
			Title:       rec.Title,
			Author:      author,
			Description: desc,
			Genre:       InferGenre(rec.Subjects),
			Language:    "en",
			Cover:       cover,
			PDFURL:      pdf,
			DownloadURL: download,
			Year:        year,
			Pages:       random.Pages(),
			Rating:      random.Rating(),
			Free:        true,
		})
	}
	return books, nil
}

func firstFormat(formats map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := formats[k]; v != "" {
			return v
		}
	}
	return ""
}

// genreRules are checked in order; the first matching keyword wins.
var genreRules = []struct {
	keywords []string
	genre    string
}{
	{[]string{"fiction", "novel"}, "fiction"},
	{[]string{"mystery", "detective"}, "mystery"},
	{[]string{"romance", "love"}, "romance"},
	{[]string{"science", "technology"}, "science"},
	{[]string{"history", "historical"}, "history"},
	{[]string{"biography", "memoir"}, "biography"},
	{[]string{"fantasy", "magic"}, "fantasy"},
	{[]string{"poetry", "poems"}, "poetry"},
	{[]string{"philosophy"}, "philosophy"},
}

// InferGenre folds free-text subject tags into the fixed genre set. Records
// that match nothing are filed under fiction.
func InferGenre(subjects []string) string {
	joined := strings.ToLower(strings.Join(subjects, " "))
	for _, rule := range genreRules {
		for _, kw := range rule.keywords {
			if strings.Contains(joined, kw) {
				return rule.genre
			}
		}
	}
	return "fiction"
}
