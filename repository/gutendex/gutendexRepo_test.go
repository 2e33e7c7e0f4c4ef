package gutendex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"digitallibrary/model"
)

const bulkFixture = `{
  "count": 3,
  "results": [
    {
      "id": 1342,
      "title": "Pride and Prejudice",
      "authors": [{"name": "Austen, Jane"}],
      "subjects": ["England -- Fiction", "Love stories"],
      "formats": {
        "application/pdf": "https://www.gutenberg.org/files/1342/1342.pdf",
        "text/html": "https://www.gutenberg.org/files/1342/1342-h.htm",
        "text/plain": "https://www.gutenberg.org/files/1342/1342.txt",
        "image/jpeg": "https://www.gutenberg.org/cache/epub/1342/pg1342.cover.jpg"
      },
      "download_count": 50000
    },
    {
      "id": 2701,
      "title": "Moby Dick",
      "authors": [],
      "subjects": [],
      "formats": {"text/html": "https://www.gutenberg.org/files/2701/2701-h.htm"},
      "download_count": 12
    },
    {
      "id": 999,
      "title": "",
      "authors": [{"name": "Nobody"}],
      "subjects": [],
      "formats": {},
      "download_count": 0
    }
  ]
}`

func TestBulk_MapsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/", r.URL.Path)
		require.Equal(t, "en", r.URL.Query().Get("languages"))
		require.Equal(t, "50", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(bulkFixture))
	}))
	defer srv.Close()

	books, err := NewHTTP(srv.URL).Bulk(context.Background())
	require.NoError(t, err)

	// The untitled record is dropped.
	require.Len(t, books, 2)

	pp := books[0]
	require.Equal(t, "1342", pp.ID)
	require.Equal(t, "Austen, Jane", pp.Author)
	require.Equal(t, "England -- Fiction, Love stories", pp.Description)
	require.Equal(t, "fiction", pp.Genre)
	require.Equal(t, "en", pp.Language)
	require.Equal(t, "https://www.gutenberg.org/cache/epub/1342/pg1342.cover.jpg", pp.Cover)
	require.Equal(t, "https://www.gutenberg.org/files/1342/1342.pdf", pp.PDFURL)
	require.Equal(t, "https://www.gutenberg.org/files/1342/1342.pdf", pp.DownloadURL)
	require.True(t, pp.Free)
	// classics get a pre-2000 year
	require.GreaterOrEqual(t, pp.Year, 1900)
	require.Less(t, pp.Year, 2000)
	require.NotZero(t, pp.Pages)
	require.NotEmpty(t, pp.Rating)

	md := books[1]
	require.Equal(t, model.UnknownAuthor, md.Author)
	require.Equal(t, "Classic literature", md.Description)
	require.Equal(t, model.PlaceholderCover, md.Cover)
	// no pdf: read falls back to html, download to the ebook page
	require.Equal(t, "https://www.gutenberg.org/files/2701/2701-h.htm", md.PDFURL)
	require.Equal(t, "https://www.gutenberg.org/ebooks/2701", md.DownloadURL)
	require.Equal(t, 2000, md.Year)
}

func TestBulk_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Bulk(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestInferGenre(t *testing.T) {
	cases := []struct {
		subjects []string
		want     string
	}{
		{[]string{"Detective and mystery stories"}, "mystery"},
		{[]string{"Love stories"}, "romance"},
		{[]string{"Science -- History"}, "science"},
		{[]string{"Great Britain -- History"}, "history"},
		{[]string{"Autobiography", "Memoirs"}, "biography"},
		{[]string{"Magic -- Juvenile literature"}, "fantasy"},
		{[]string{"Poems"}, "poetry"},
		{[]string{"Philosophy, Ancient"}, "philosophy"},
		// fiction outranks later rules even when both match
		{[]string{"Science Fiction"}, "fiction"},
		{[]string{"Detective and mystery fiction"}, "fiction"},
		// no match defaults to fiction
		{[]string{"Cooking"}, "fiction"},
		{nil, "fiction"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, InferGenre(tc.subjects), "subjects %v", tc.subjects)
	}
}
