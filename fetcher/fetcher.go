// Package fetcher retrieves the raw HTML of a target page with explicit
// bounds: one attempt, a hard timeout, a body size cap and a redirect limit.
// Failures are categorized into the apperr taxonomy at this boundary.
package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/seo-insight/backend/apperr"
	"github.com/seo-insight/backend/config"
	"github.com/seo-insight/backend/metrics"
)

var errTooManyRedirects = errors.New("too many redirects")

// Fetcher performs bounded single-attempt GET requests.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
}

// New creates a Fetcher from the given configuration. The transport is tuned
// for connection reuse across requests.
func New(cfg config.FetchConfig) *Fetcher {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= cfg.MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
	}
}

// Client exposes the underlying HTTP client for reuse by per-resource
// fetches (image deep analysis shares the transport).
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// FetchHTML performs a single GET and returns the raw HTML on 2xx. There is
// no retry; the caller decides whether to resubmit.
func (f *Fetcher) FetchHTML(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", apperr.BadRequest(apperr.CodeInvalidURLFormat, "invalid URL format")
	}
	f.setRequestHeaders(req)

	start := time.Now()
	resp, err := f.client.Do(req)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", categorizeTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", categorizeStatus(resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", categorizeTransportError(err)
	}
	if int64(len(body)) > f.cfg.MaxBodyBytes {
		return "", apperr.New(apperr.CodeResponseTooLarge,
			fmt.Sprintf("response body exceeds the %d byte limit", f.cfg.MaxBodyBytes),
			http.StatusBadGateway)
	}

	return string(body), nil
}

func (f *Fetcher) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

func categorizeStatus(status int) *apperr.Error {
	switch {
	case status == http.StatusNotFound:
		return apperr.New(apperr.CodeTargetNotFound, "the target page was not found", http.StatusNotFound)
	case status == http.StatusForbidden:
		return apperr.New(apperr.CodeTargetForbidden, "the target refused access (403)", http.StatusForbidden)
	case status == http.StatusTooManyRequests:
		return apperr.New(apperr.CodeTargetRateLimited, "the target is rate limiting requests (429)", http.StatusTooManyRequests)
	case status >= 500:
		return apperr.New(apperr.CodeTargetServerError,
			fmt.Sprintf("the target returned a server error (%d)", status), status)
	case status >= 400:
		return apperr.New(apperr.CodeTargetClientError,
			fmt.Sprintf("the target returned an error (%d)", status), status)
	default:
		return apperr.New(apperr.CodeUnexpectedFailure,
			fmt.Sprintf("unexpected response status %d", status), http.StatusInternalServerError)
	}
}

func categorizeTransportError(err error) *apperr.Error {
	if errors.Is(err, errTooManyRedirects) {
		return apperr.Wrap(apperr.CodeTooManyRedirects, "the target redirected too many times",
			http.StatusBadGateway, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperr.Wrap(apperr.CodeTargetNotFound, "could not resolve the target host",
			http.StatusNotFound, err)
	}

	if isTimeout(err) {
		return apperr.Wrap(apperr.CodeTargetTimeout, "the target took too long to respond",
			http.StatusGatewayTimeout, err)
	}

	if isCertificateError(err) {
		return apperr.Wrap(apperr.CodeUnexpectedFailure, "TLS certificate verification failed",
			http.StatusInternalServerError, err)
	}

	return apperr.Wrap(apperr.CodeUnexpectedFailure, "failed to fetch the target page",
		http.StatusInternalServerError, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isCertificateError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuth x509.UnknownAuthorityError
	if errors.As(err, &unknownAuth) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var certInvalid x509.CertificateInvalidError
		return errors.As(urlErr.Err, &certInvalid)
	}
	return false
}
