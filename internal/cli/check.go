package cli

// This file implements the "check" command: an HTTP probe driven through the
// synchronous bridge whose failures map onto the error taxonomy.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oarc-decorators/pkg/handle"
	"oarc-decorators/pkg/runsync"
)

// maxProbeBody bounds how much of a response body is drained.
const maxProbeBody = 1 << 20

// ProbeResult is the outcome of a successful probe.
type ProbeResult struct {
	URL        string `json:"url" yaml:"url"`
	Status     string `json:"status" yaml:"status"`
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Duration   string `json:"duration" yaml:"duration"`
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check URL",
		Short: "Probe a URL and report failures by kind",
		Long: `Send a GET request to URL and report the outcome.
Connection failures and 5xx responses exit as network errors, 401/403 as
authentication errors, 404/410 as resource-not-found errors, and other 4xx
responses as data extraction errors.`,
		Args: handle.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := app.Printer.SpinnerStart(fmt.Sprintf("Checking %s", args[0]))
			res, err := app.Probe(cmd.Context(), args[0])
			if err != nil {
				stop(false, "Check failed")
				return err
			}
			stop(true, "Check passed")
			return app.render(res, func() error {
				app.Printer.Success(fmt.Sprintf("%s responded %s in %s", res.URL, res.Status, res.Duration))
				return nil
			})
		},
	}
}

// Probe sends a GET request to rawURL through the synchronous bridge, bounded
// by the configured probe timeout.
func (a *App) Probe(ctx context.Context, rawURL string) (ProbeResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ProbeResult{}, newWithSentinel(ErrInvalidProbeURL,
			fmt.Sprintf("invalid URL %q: expected http:// or https:// followed by a host", rawURL)).
			WithContext("url", rawURL)
	}
	timeout := a.Settings().ProbeTimeout
	target := u.Redacted()

	return runsync.RunWith(ctx, a.Runner, func(ctx context.Context) (ProbeResult, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return ProbeResult{}, wrapWithSentinelAndContext(ErrInvalidProbeURL, err,
				fmt.Sprintf("cannot build request for %s", target), map[string]any{"url": target})
		}

		a.Logger.Debug("Probing", zap.String("url", target), zap.Duration("timeout", timeout))
		start := time.Now()
		resp, err := a.httpClient().Do(req)
		if err != nil {
			return ProbeResult{}, wrapWithSentinelAndContext(ErrProbeRequestFailed, err,
				fmt.Sprintf("request to %s failed", target),
				map[string]any{"url": target, "timeout": timeout.String()})
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProbeBody))

		if err := statusError(target, resp); err != nil {
			return ProbeResult{}, err
		}
		return ProbeResult{
			URL:        target,
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Duration:   time.Since(start).Round(time.Millisecond).String(),
		}, nil
	})
}

func (a *App) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

// statusError maps an unsuccessful response status to an error of the matching kind.
func statusError(target string, resp *http.Response) error {
	var base error
	switch code := resp.StatusCode; {
	case code < 400:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		base = ErrProbeUnauthorized
	case code == http.StatusNotFound || code == http.StatusGone:
		base = ErrProbeNotFound
	case code >= 500:
		base = ErrProbeServerError
	default:
		base = ErrProbeBadResponse
	}
	return newWithSentinel(base, fmt.Sprintf("%s returned %s", target, resp.Status)).
		WithContextMap(map[string]any{"url": target, "status_code": resp.StatusCode})
}
