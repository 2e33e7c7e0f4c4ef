package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"digitallibrary/model"
)

const subjectFixture = `{
  "name": "mystery",
  "works": [
    {
      "key": "/works/OL123W",
      "title": "The Hound of the Baskervilles",
      "authors": [{"name": "Arthur Conan Doyle"}],
      "first_sentence": "Mr. Sherlock Holmes, who was usually very late in the mornings...",
      "cover_id": 8231821,
      "first_publish_year": 1902
    },
    {
      "key": "/works/OL456W",
      "title": "An Anonymous Affair",
      "authors": [],
      "cover_id": 0,
      "first_publish_year": 0
    },
    {
      "key": "",
      "title": "Broken Record"
    }
  ]
}`

func TestBySubject_MapsWorks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subjects/mystery.json", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(subjectFixture))
	}))
	defer srv.Close()

	books, err := NewHTTP(srv.URL).BySubject(context.Background(), "mystery", SubjectLimit)
	require.NoError(t, err)

	// The keyless record is dropped.
	require.Len(t, books, 2)

	hb := books[0]
	require.Equal(t, "/works/OL123W", hb.ID)
	require.Equal(t, "The Hound of the Baskervilles", hb.Title)
	require.Equal(t, "Arthur Conan Doyle", hb.Author)
	require.Equal(t, "mystery", hb.Genre)
	require.Equal(t, "en", hb.Language)
	require.Equal(t, "https://covers.openlibrary.org/b/id/8231821-L.jpg", hb.Cover)
	require.Equal(t, "https://archive.org/download/OL123W/", hb.PDFURL)
	require.Equal(t, hb.PDFURL, hb.DownloadURL)
	require.Equal(t, 1902, hb.Year)
	require.NotZero(t, hb.Pages)
	require.NotEmpty(t, hb.Rating)

	anon := books[1]
	require.Equal(t, model.UnknownAuthor, anon.Author)
	require.Equal(t, "No description available.", anon.Description)
	require.Equal(t, model.PlaceholderCover, anon.Cover)
	require.Equal(t, 2020, anon.Year)
}

func TestBySubject_NotFoundIsNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).BySubject(context.Background(), "mystery", SubjectLimit)
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestBySubject_ServerErrorsAreRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"works": []}`))
	}))
	defer srv.Close()

	books, err := NewHTTP(srv.URL).BySubject(context.Background(), "mystery", SubjectLimit)
	require.NoError(t, err)
	require.Empty(t, books)
	require.Equal(t, 3, calls)
}
