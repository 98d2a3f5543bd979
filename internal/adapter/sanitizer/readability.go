package sanitizer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/user/jaundice-service/internal/repository"
)

// Readability extracts the main content of arbitrary pages. It serves sites
// that have no dedicated template.
type Readability struct {
	minTextRunes int
}

func NewReadability() *Readability {
	return &Readability{minTextRunes: 50}
}

var _ repository.Sanitizer = (*Readability)(nil)

// Sanitize implements repository.Sanitizer.
func (r *Readability) Sanitize(pageURL, html string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse url: %v", repository.ErrUnsupportedDocument, err)
	}

	// A fresh parser per call: readability.Parser keeps per-document state.
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return "", fmt.Errorf("%w: readability: %v", repository.ErrUnsupportedDocument, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("%w: parse readability output: %v", repository.ErrUnsupportedDocument, err)
	}

	text := selectionText(doc.Selection)
	if len([]rune(text)) < r.minTextRunes {
		return "", fmt.Errorf("%w: readability found no article body on %s", repository.ErrUnsupportedDocument, pageURL)
	}
	return text, nil
}
