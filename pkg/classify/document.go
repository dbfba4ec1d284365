package classify

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parse builds a goquery document from a page body.
func parse(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkup, err)
	}
	return doc, nil
}
