// Package seourl validates and canonicalizes the analysis inputs before any
// network call happens: the target URL and the keyword.
package seourl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/seo-insight/backend/apperr"
)

var (
	hostnameRe = regexp.MustCompile(`^([A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,}$`)
	keywordRe  = regexp.MustCompile(`^[A-Za-z0-9\s-]+$`)
	schemeRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// tldTypos maps commonly fat-fingered top-level labels to the intended TLD.
var tldTypos = map[string]string{
	"con": "com",
	"cmo": "com",
	"cm":  "com",
	"comm": "com",
	"ogr": "org",
	"or":  "org",
	"orgg": "org",
	"nte": "net",
	"ne":  "net",
	"nett": "net",
}

const maxKeywordLength = 100

// AnalyzedURL is the validated, canonical form of a user-supplied URL.
// Normalized always carries an explicit http(s) scheme.
type AnalyzedURL struct {
	Raw        string
	Normalized string
	Hostname   string
	Path       string
}

// Normalize trims, defaults the scheme to https, parses the URL and rejects
// local addresses, malformed hostnames and typo'd TLDs.
func Normalize(raw string) (AnalyzedURL, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.Trim(trimmed, `"'`)
	if trimmed == "" {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeInvalidParams, "url is required")
	}

	withScheme := trimmed
	if !hasHTTPScheme(withScheme) {
		if schemeRe.MatchString(withScheme) {
			return AnalyzedURL{}, apperr.BadRequest(apperr.CodeInvalidProtocol, "only http and https URLs are supported")
		}
		withScheme = "https://" + withScheme
	}

	parsed, err := url.Parse(withScheme)
	if err != nil || parsed.Host == "" {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeInvalidURLFormat, "invalid URL format")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeInvalidProtocol, "only http and https URLs are supported")
	}

	hostname := strings.ToLower(parsed.Hostname())
	if isLocalAddress(hostname) {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeLocalAddress, "local addresses cannot be analyzed")
	}

	if !hostnameRe.MatchString(hostname) {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeInvalidHostname, "hostname is not a valid domain name")
	}

	labels := strings.Split(hostname, ".")
	tld := labels[len(labels)-1]
	if suggestion, ok := tldTypos[tld]; ok {
		return AnalyzedURL{}, apperr.BadRequest(apperr.CodeTldTypo,
			`the domain ends in ".`+tld+`" - did you mean ".`+suggestion+`"?`)
	}

	return AnalyzedURL{
		Raw:        raw,
		Normalized: parsed.String(),
		Hostname:   hostname,
		Path:       parsed.Path,
	}, nil
}

// ValidateKeyword accepts trimmed keywords of 1-100 characters made of
// letters, digits, whitespace and hyphens. Matching elsewhere is always
// case-insensitive.
func ValidateKeyword(raw string) (string, error) {
	keyword := strings.TrimSpace(raw)
	if keyword == "" {
		return "", apperr.BadRequest(apperr.CodeInvalidParams, "keyword is required")
	}
	if len(keyword) > maxKeywordLength {
		return "", apperr.BadRequest(apperr.CodeInvalidKeyword, "keyword must be 100 characters or fewer")
	}
	if !keywordRe.MatchString(keyword) {
		return "", apperr.BadRequest(apperr.CodeInvalidKeyword,
			"keyword may only contain letters, numbers, spaces and hyphens")
	}
	return keyword, nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isLocalAddress(hostname string) bool {
	if hostname == "localhost" || hostname == "::1" {
		return true
	}
	return strings.HasPrefix(hostname, "127.")
}
