package repository

// Sanitizer turns a site-specific HTML document into plain article text.
type Sanitizer interface {
	// Sanitize returns ErrUnsupportedDocument when html does not match the
	// article template the sanitizer knows.
	Sanitize(pageURL, html string) (string, error)
}

// SanitizerRegistry picks a Sanitizer by the site an article belongs to.
type SanitizerRegistry interface {
	// Resolve returns ErrUnsupportedDocument when no sanitizer serves the URL.
	Resolve(pageURL string) (Sanitizer, error)
}
