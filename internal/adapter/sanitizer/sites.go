package sanitizer

const (
	InosmiSiteKey = "inosmi.ru"
	LentaSiteKey  = "lenta.ru"
)

// NewInosmi returns the template for inosmi.ru articles.
func NewInosmi() *Template {
	return &Template{
		Article: "article.article",
		Noise: []string{
			".article__notice",
			".article__aggr",
			".article__meta",
			".article__header__info-block",
			".article__info",
			".article__tags",
			".article__announce-text",
			".media__copyright",
			".article__block[data-type=media]",
		},
	}
}

// NewLenta returns the template for lenta.ru news and articles.
func NewLenta() *Template {
	return &Template{
		Article: "div.topic-body__content",
		Noise: []string{
			".box-inline-topic",
			".topic-body__origin",
			".picture",
		},
	}
}
