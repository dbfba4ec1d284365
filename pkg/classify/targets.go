package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rising-Edge-Group/ectf-public/pkg/regexcache"
)

// Target is one row of the targets listing.
type Target struct {
	// Name is the display name with the trailing address removed.
	Name string `json:"name" yaml:"name"`
	// ID is the row's data-key value, kept opaque.
	ID string `json:"id" yaml:"id"`
}

// targetNamePattern keeps the leading non-digit run of a row's text; the
// platform appends the target's IP address right after the name. Any
// Unicode decimal digit ends the name, not only ASCII 0-9.
var targetNamePattern = regexcache.MustGet(`^([^\p{Nd}]+)`)

// LastPageIndex reads the pager of a targets page. The element classed
// "page-item last" wraps a link whose data-page attribute is the zero-based
// index of the final page. ok is false when the page has no pager (a
// single page of targets).
func LastPageIndex(page string) (index int, ok bool, err error) {
	doc, err := parse(page)
	if err != nil {
		return 0, false, err
	}
	last := doc.Find(".page-item.last").First()
	if last.Length() == 0 {
		return 0, false, nil
	}
	raw, exists := last.Children().First().Attr("data-page")
	if !exists {
		return 0, false, nil
	}
	index, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || index < 0 {
		return 0, false, fmt.Errorf("%w: data-page=%q", ErrPagination, raw)
	}
	return index, true, nil
}

// ParseTargets returns the targets of one listing page in document order.
// Every element carrying a data-key attribute is a target row; rows whose
// text starts with a digit have no name and are skipped.
func ParseTargets(page string) ([]Target, error) {
	doc, err := parse(page)
	if err != nil {
		return nil, err
	}
	var targets []Target
	doc.Find("[data-key]").Each(func(_ int, s *goquery.Selection) {
		name, ok := TargetName(s.Text())
		if !ok {
			return
		}
		id, _ := s.Attr("data-key")
		targets = append(targets, Target{Name: name, ID: id})
	})
	return targets, nil
}

// TargetName splits a row label such as "Vulnerable Web Server10.0.5.23"
// at its first digit and returns the trimmed name.
func TargetName(label string) (string, bool) {
	m := targetNamePattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}
