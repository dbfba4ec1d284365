package regexcache

import (
	"regexp"
	"sync"
	"testing"
)

func TestGet_ValidPattern(t *testing.T) {
	re, err := Get(`\d{1,3}(?:,\d{3})*`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("1,250") {
		t.Error("expected match for '1,250'")
	}
}

func TestGet_InvalidPattern(t *testing.T) {
	if _, err := Get(`[invalid`); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if _, ok := cache.Load(`[invalid`); ok {
		t.Error("invalid pattern must not be cached")
	}
}

func TestGet_Caching(t *testing.T) {
	pattern := `Flag \[.*\] claimed before`

	re1, _ := Get(pattern)
	re2, _ := Get(pattern)

	if re1 != re2 {
		t.Error("expected same regexp instance from cache")
	}
	if _, ok := cache.Load(pattern); !ok {
		t.Error("expected pattern to be cached")
	}
}

func TestMustGet_InvalidPattern(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid pattern")
		}
	}()
	MustGet(`(unclosed`)
}

func TestLiteral_EscapesMetacharacters(t *testing.T) {
	tests := []struct {
		name    string
		parts   []string
		input   string
		matches bool
	}{
		{"exact text", []string{"Flag [", "a.*b", "]"}, "Flag [a.*b]", true},
		{"dot star is not a wildcard", []string{"Flag [", "a.*b", "]"}, "Flag [aXXXb]", false},
		{"brackets are literal", []string{"[<strong>", "x", "</strong>]"}, "[<strong>x</strong>]", true},
		{"anchors are literal", []string{"^flag$"}, "^flag$", true},
		{"anchors do not anchor", []string{"^flag$"}, "flag", false},
		{"empty parts", nil, "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := Literal(tt.parts...)
			if got := re.MatchString(tt.input); got != tt.matches {
				t.Errorf("Literal(%q).MatchString(%q) = %v, want %v", tt.parts, tt.input, got, tt.matches)
			}
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*regexp.Regexp, 50)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Literal("Flag [", "ABC123", "]")
		}(i)
	}
	wg.Wait()

	want := Literal("Flag [", "ABC123", "]")
	for i, re := range got {
		if re != want {
			t.Errorf("goroutine %d got a different regexp instance", i)
		}
	}
}
