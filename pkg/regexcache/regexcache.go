// Package regexcache provides a thread-safe cache for compiled regular expressions.
// Patterns built at runtime (for example around a user supplied flag) are
// compiled once per distinct pattern.
//
// Usage:
//
//	re, err := regexcache.Get(`Flag \[.*\] claimed before`)
//	re := regexcache.Literal("Flag [<strong>", flag, "</strong>] does not exist!")
package regexcache

import (
	"regexp"
	"strings"
	"sync"
)

// cache holds compiled regular expressions keyed by pattern string.
var cache sync.Map

// Get returns a compiled regexp for the given pattern, compiling and caching
// it on first use.
func Get(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// MustGet is like Get but panics if the pattern is invalid.
// Use it only for patterns fixed at compile time.
func MustGet(pattern string) *regexp.Regexp {
	re, err := Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Literal returns a cached regexp matching the concatenation of parts as
// plain text. Every metacharacter is escaped, so untrusted input can be
// embedded without turning into pattern syntax. It never fails.
func Literal(parts ...string) *regexp.Regexp {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(regexp.QuoteMeta(p))
	}
	return MustGet(b.String())
}
