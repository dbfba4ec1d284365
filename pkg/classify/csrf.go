package classify

// ExtractCSRFToken returns the content of the first
// <meta name="csrf-token"> element. The platform rejects state-changing
// requests without it, so a missing or empty token is ErrTokenNotFound.
func ExtractCSRFToken(page string) (string, error) {
	doc, err := parse(page)
	if err != nil {
		return "", err
	}
	token, ok := doc.Find(`meta[name="csrf-token"]`).First().Attr("content")
	if !ok || token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}
