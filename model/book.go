// model/book.go
package model

// PlaceholderCover is served when an upstream record carries no cover image.
const PlaceholderCover = "/placeholder.svg?height=400&width=300"

// UnknownAuthor is the default when a source omits the author.
const UnknownAuthor = "Unknown Author"

// Genres is the fixed genre set. Upstream subject tags are folded into one of these.
var Genres = []string{
	"fiction",
	"mystery",
	"romance",
	"science-fiction",
	"fantasy",
	"biography",
	"history",
	"science",
	"philosophy",
	"poetry",
}

// Book is a fully populated catalog record. The source adapters guarantee that no
// field is left empty: missing upstream data is defaulted or synthesized before a
// Book enters the catalog.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
	Cover       string `json:"cover"`
	PDFURL      string `json:"pdf_url"`
	DownloadURL string `json:"download_url"`
	Year        int    `json:"year"`
	Pages       int    `json:"pages"`
	Rating      string `json:"rating"`
	Free        bool   `json:"free"`
}

// ValidGenre reports whether g is one of the fixed genre set.
func ValidGenre(g string) bool {
	for _, v := range Genres {
		if v == g {
			return true
		}
	}
	return false
}
