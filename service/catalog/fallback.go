package catalog

import "digitallibrary/model"

// FallbackBooks is the built-in sample set installed when every upstream
// source fails or returns nothing, so the rest of the system always has
// non-empty data to render. Three books, three distinct genres, one premium.
func FallbackBooks() []model.Book {
	return []model.Book{
		{
			ID:          "mock-1",
			Title:       "The Great Adventure",
			Author:      "Jane Smith",
			Description: "An epic tale of courage and discovery in uncharted territories.",
			Genre:       "fiction",
			Language:    "en",
			Cover:       model.PlaceholderCover,
			PDFURL:      "https://example.com/sample.pdf",
			DownloadURL: "https://example.com/sample.pdf",
			Year:        2023,
			Pages:       324,
			Rating:      "4.5",
			Free:        true,
		},
		{
			ID:          "mock-2",
			Title:       "Mystery of the Lost City",
			Author:      "John Doe",
			Description: "A thrilling mystery that will keep you guessing until the very end.",
			Genre:       "mystery",
			Language:    "en",
			Cover:       model.PlaceholderCover,
			PDFURL:      "https://example.com/sample.pdf",
			DownloadURL: "https://example.com/sample.pdf",
			Year:        2022,
			Pages:       289,
			Rating:      "4.2",
			Free:        false,
		},
		{
			ID:          "mock-3",
			Title:       "Love in Paris",
			Author:      "Marie Claire",
			Description: "A beautiful romance set against the backdrop of the City of Light.",
			Genre:       "romance",
			Language:    "en",
			Cover:       model.PlaceholderCover,
			PDFURL:      "https://example.com/sample.pdf",
			DownloadURL: "https://example.com/sample.pdf",
			Year:        2023,
			Pages:       256,
			Rating:      "4.7",
			Free:        true,
		},
	}
}
