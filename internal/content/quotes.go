package content

import (
	"math/rand/v2"
)

// QuotePair is one quote with an accompanying image.
type QuotePair struct {
	Quote    string `json:"quote"`
	ImageURL string `json:"image_url"`
}

// Collection holds the full static sets.
type Collection struct {
	Quotes []string `json:"quotes"`
	Images []string `json:"images"`
}

var defaultQuotes = []string{
	"The man who says he can, and the man who says he can't are both correct.",
	"A great man is hard on himself; a small man is hard on others.",
	"The gem cannot be polished without friction, nor man perfected without trials.",
}

var defaultImages = []string{
	"https://cdn.homeboard.example/quotes/confucius-portrait.jpg",
	"https://cdn.homeboard.example/quotes/confucius-statue.jpg",
	"https://cdn.homeboard.example/quotes/confucius-temple.jpg",
}

// Quotes serves the static quote board. Quote and image are picked
// independently, so any pairing can come back.
type Quotes struct {
	quotes []string
	images []string
	pick   func(n int) int
}

// QuotesOption tweaks construction; used by tests to pin randomness.
type QuotesOption func(*Quotes)

func WithQuotePicker(pick func(n int) int) QuotesOption {
	return func(q *Quotes) {
		q.pick = pick
	}
}

func NewQuotes(opts ...QuotesOption) *Quotes {
	q := &Quotes{
		quotes: defaultQuotes,
		images: defaultImages,
		pick:   rand.IntN,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Random returns one quote/image pairing.
func (q *Quotes) Random() QuotePair {
	return QuotePair{
		Quote:    q.quotes[q.pick(len(q.quotes))],
		ImageURL: q.images[q.pick(len(q.images))],
	}
}

// All returns every quote and image.
func (q *Quotes) All() Collection {
	return Collection{
		Quotes: append([]string(nil), q.quotes...),
		Images: append([]string(nil), q.images...),
	}
}
