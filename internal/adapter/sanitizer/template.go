package sanitizer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/jaundice-service/internal/repository"
)

// Template extracts the article body of a known site layout with CSS
// selectors.
type Template struct {
	// Article must match exactly one element, otherwise the page is not an
	// article of this site.
	Article string
	// Noise elements are removed from the article before text extraction.
	Noise []string
}

// commonNoise is stripped from every template.
var commonNoise = []string{"script", "style", "noscript", "iframe", "svg", "img", "figure", "button", "aside", "form", "header", "footer", "nav"}

var _ repository.Sanitizer = (*Template)(nil)

// Sanitize implements repository.Sanitizer.
func (t *Template) Sanitize(pageURL, html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", repository.ErrUnsupportedDocument, err)
	}

	articles := doc.Find(t.Article)
	if articles.Length() != 1 {
		return "", fmt.Errorf("%w: %d elements match %q on %s", repository.ErrUnsupportedDocument, articles.Length(), t.Article, pageURL)
	}

	article := articles.First()
	article.Find(strings.Join(commonNoise, ", ")).Remove()
	if len(t.Noise) > 0 {
		article.Find(strings.Join(t.Noise, ", ")).Remove()
	}

	return selectionText(article), nil
}

// selectionText joins the text of block elements with newlines so adjacent
// paragraphs do not glue their boundary words together.
func selectionText(s *goquery.Selection) string {
	s.Find("p, div, li, h1, h2, h3, h4, h5, h6, blockquote, br").Each(func(_ int, block *goquery.Selection) {
		block.AppendHtml("\n")
	})
	return collapseWhitespace(s.Text())
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
