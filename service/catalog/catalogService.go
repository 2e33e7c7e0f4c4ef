package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"digitallibrary/model"
	openlibrary "digitallibrary/repository/openlibrary"
	"digitallibrary/util/random"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, or "" for plain errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// SourceA is the per-subject paginated source (Open Library).
type SourceA interface {
	BySubject(ctx context.Context, subject string, limit int) ([]model.Book, error)
}

// SourceB is the single bulk source (Gutendex).
type SourceB interface {
	Bulk(ctx context.Context) ([]model.Book, error)
}

// AddBookReq is validated upload metadata for a user-submitted book.
type AddBookReq struct {
	Title       string
	Author      string
	Genre       string
	Language    string
	Description string
}

type Service interface {
	// Refresh re-runs the upstream aggregation and replaces the catalog
	// wholesale. It never fails: on total upstream failure the built-in
	// fallback set is installed. Returns the catalog size and whether the
	// fallback was used.
	Refresh(ctx context.Context) (int, bool)

	// Books returns a snapshot of the full catalog in aggregation order.
	Books() []model.Book

	ByID(id string) (*model.Book, error)

	// AddUserBook completes uploaded metadata with synthesized fields and
	// prepends the result to the catalog.
	AddUserBook(req AddBookReq) (*model.Book, error)

	Count() int
}

type service struct {
	a   SourceA
	b   SourceB
	log *slog.Logger

	mu         sync.RWMutex
	books      []model.Book
	nextGen    uint64 // next load generation to hand out
	appliedGen uint64 // generation of the load currently installed
}

func New(a SourceA, b SourceB, log *slog.Logger) Service {
	return &service{a: a, b: b, log: log}
}

func (s *service) Refresh(ctx context.Context) (int, bool) {
	// Overlapping refreshes are ordered by generation: whichever started
	// later wins, and a slow older load can never clobber a newer one.
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	books := s.fetchAll(ctx)

	fallback := false
	if len(books) == 0 {
		books = FallbackBooks()
		fallback = true
		s.log.Warn("all catalog sources empty, using built-in sample set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.appliedGen {
		// A newer load already finished; discard this one.
		s.log.Info("discarding stale catalog load", "generation", gen, "applied", s.appliedGen)
		return len(s.books), false
	}
	s.appliedGen = gen
	s.books = books
	s.log.Info("catalog loaded", "books", len(books), "generation", gen, "fallback", fallback)
	return len(books), fallback
}

// fetchAll fans out to both sources and joins when both have settled. Either
// branch failing contributes zero books without tainting the other.
func (s *service) fetchAll(ctx context.Context) []model.Book {
	var fromA, fromB []model.Book

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, subject := range openlibrary.Subjects {
			books, err := s.a.BySubject(ctx, subject, openlibrary.SubjectLimit)
			if err != nil {
				s.log.Error("subject fetch failed", "subject", subject, "err", err)
				continue
			}
			fromA = append(fromA, books...)
		}
		return nil
	})

	g.Go(func() error {
		books, err := s.b.Bulk(ctx)
		if err != nil {
			s.log.Error("bulk fetch failed", "err", err)
			return nil
		}
		fromB = books
		return nil
	})

	// Branches swallow their own errors, so Wait never returns one.
	_ = g.Wait()

	return append(fromA, fromB...)
}

func (s *service) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *service) ByID(id string) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, makeErr(ErrNotFound)
}

func (s *service) AddUserBook(req AddBookReq) (*model.Book, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Author) == "" ||
		req.Language == "" ||
		!model.ValidGenre(req.Genre) {
		return nil, makeErr(ErrBadInput)
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = "No description available."
	}

	now := time.Now()
	b := model.Book{
		ID:          fmt.Sprintf("user-%d", now.UnixMilli()),
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Description: desc,
		Genre:       req.Genre,
		Language:    req.Language,
		Cover:       model.PlaceholderCover,
		PDFURL:      "https://example.com/sample.pdf",
		DownloadURL: "https://example.com/sample.pdf",
		Year:        now.Year(),
		Pages:       random.Pages(),
		Rating:      "0.0",
		Free:        true,
	}

	s.mu.Lock()
	s.books = append([]model.Book{b}, s.books...)
	s.mu.Unlock()

	return &b, nil
}

func (s *service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}
