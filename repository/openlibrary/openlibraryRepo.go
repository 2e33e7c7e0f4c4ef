package openlibrary

import (
	"context"

	"digitallibrary/model"
)

// Subjects are the categories fetched on every catalog load, one request each.
var Subjects = []string{"fiction", "mystery", "romance", "science", "history", "biography"}

// SubjectLimit caps how many works a single subject request returns.
const SubjectLimit = 20

// Repo fetches catalog records from the Open Library subject API.
type Repo interface {
	BySubject(ctx context.Context, subject string, limit int) ([]model.Book, error)
}
