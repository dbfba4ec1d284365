package classify

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rising-Edge-Group/ectf-public/pkg/regexcache"
)

// notifyMarker starts every notification line the dashboard renders.
const notifyMarker = "$.notify"

// Fixed notification patterns. The flag-not-found pattern embeds the flag
// and is built per call, see notFoundPattern.
var (
	claimedBeforePattern     = regexcache.MustGet(`Flag \[.*\] claimed before`)
	claimedForPointsPattern  = regexcache.MustGet(`Flag \[.*\] claimed for \d{1,3}(?:,\d{3})* points`)
	discoveryRequiredPattern = regexcache.Literal("You need to discover at least one service before claiming a flag for this system.")
	accessDeniedPattern      = regexcache.Literal("You cannot claim this flag. You don't have access to this network.")
)

type rule struct {
	outcome Outcome
	pattern *regexp.Regexp
}

// notFoundPattern matches the "does not exist" notification for flag. The
// flag is user input and is matched as plain text.
func notFoundPattern(flag string) *regexp.Regexp {
	return regexcache.Literal("Flag [<strong>", flag, "</strong>] does not exist!")
}

func rulesFor(flag string) []rule {
	return []rule{
		{FlagNotFound, notFoundPattern(flag)},
		{AlreadyClaimed, claimedBeforePattern},
		{ClaimedForPoints, claimedForPointsPattern},
		{DiscoveryRequired, discoveryRequiredPattern},
		{AccessDenied, accessDeniedPattern},
	}
}

// ClassifyClaim maps the dashboard rendered after a claim to an Outcome.
//
// Every inline <script> is scanned line by line; lines whose trimmed text
// starts with "$.notify" are tested against the known notifications. The
// first match in document order wins. Anything else, including markup that
// cannot be parsed, is Unknown.
func ClassifyClaim(page, flag string) Outcome {
	doc, err := parse(page)
	if err != nil {
		return Unknown
	}

	rules := rulesFor(flag)
	result := Unknown
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		if body == "" {
			return true
		}
		for _, line := range splitLines(body) {
			if o, ok := classifyLine(line, rules); ok {
				result = o
				return false
			}
		}
		return true
	})
	return result
}

// classifyLine tests one script line against rules.
func classifyLine(line string, rules []rule) (Outcome, bool) {
	if !strings.HasPrefix(strings.TrimSpace(line), notifyMarker) {
		return Unknown, false
	}
	for _, r := range rules {
		if r.pattern.MatchString(line) {
			return r.outcome, true
		}
	}
	return Unknown, false
}

// splitLines splits on \n, \r\n and \r.
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
}
