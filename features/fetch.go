// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/z5labs/tour"
	"github.com/z5labs/tour/internal/try"
)

// DefaultFetchTimeout bounds a fetch whose configured timeout is not positive.
const DefaultFetchTimeout = 10 * time.Second

// FetchConfig configures the [Fetch] routine.
type FetchConfig struct {
	URL            string        `config:"url"`
	Timeout        time.Duration `config:"timeout"`
	RequireSuccess bool          `config:"requireSuccess"`
	MaxBodyBytes   int64         `config:"maxBodyBytes"`
}

// EffectiveTimeout returns the timeout, or [DefaultFetchTimeout] if it is
// zero or negative. A fetch is never unbounded.
func (cfg FetchConfig) EffectiveTimeout() time.Duration {
	if cfg.Timeout <= 0 {
		return DefaultFetchTimeout
	}
	return cfg.Timeout
}

// NetworkErrorKind classifies a [NetworkError].
type NetworkErrorKind int

const (
	ConnectionFailure NetworkErrorKind = iota
	TimedOut
	BadStatus
)

// String implements the [fmt.Stringer] interface.
func (k NetworkErrorKind) String() string {
	switch k {
	case ConnectionFailure:
		return "connection failure"
	case TimedOut:
		return "timed out"
	case BadStatus:
		return "bad status"
	default:
		return fmt.Sprintf("NetworkErrorKind(%d)", int(k))
	}
}

// NetworkError is returned by [Fetch] when the request could not be
// completed or, if required, did not succeed.
type NetworkError struct {
	Kind       NetworkErrorKind
	URL        string
	StatusCode int
	Cause      error
}

// Error implements the [error] interface.
func (e NetworkError) Error() string {
	u := redact(e.URL)
	if e.Kind == BadStatus {
		return fmt.Sprintf("GET %s: %s: %d %s", u, e.Kind, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %s: %s", u, e.Kind, e.Cause)
}

func redact(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	return u.Redacted()
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e NetworkError) Unwrap() error {
	return e.Cause
}

func networkError(url string, err error) NetworkError {
	kind := ConnectionFailure
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		kind = TimedOut
	}
	return NetworkError{
		Kind:  kind,
		URL:   url,
		Cause: err,
	}
}

// Fetch returns a routine which issues a single GET request and prints
// the response status and body.
func Fetch(client *http.Client, cfg FetchConfig) tour.Routine {
	return tour.RoutineFunc(func(ctx context.Context, w io.Writer) (err error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.EffectiveTimeout())
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
		if err != nil {
			return networkError(cfg.URL, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return networkError(cfg.URL, err)
		}
		defer try.Close(&err, resp.Body)

		fmt.Fprintf(w, "status: %d\n", resp.StatusCode)
		if cfg.RequireSuccess && (resp.StatusCode < 200 || resp.StatusCode > 299) {
			return NetworkError{
				Kind:       BadStatus,
				URL:        cfg.URL,
				StatusCode: resp.StatusCode,
			}
		}

		var body io.Reader = resp.Body
		if cfg.MaxBodyBytes > 0 {
			body = io.LimitReader(resp.Body, cfg.MaxBodyBytes)
		}
		b, err := io.ReadAll(body)
		if err != nil {
			return networkError(cfg.URL, err)
		}
		_, err = fmt.Fprintf(w, "body: %s\n", b)
		return err
	})
}
