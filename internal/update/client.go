// Package update moves every remote hook source in a pipeline file to the
// latest tagged revision of its repository, rewriting the rev values in
// place while preserving the rest of the document.
package update

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// NewGitHubClient builds the API client used for tag resolution. An empty
// token yields an anonymous client.
func NewGitHubClient(token string, verbose bool, logWriter io.Writer) *github.Client {
	if verbose && logWriter == nil {
		logWriter = os.Stderr
	}

	transport := http.DefaultTransport
	if verbose {
		transport = &loggingRoundTripper{base: transport, w: logWriter}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	return github.NewClient(&http.Client{Transport: transport})
}
