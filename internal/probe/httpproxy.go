package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/util"
)

// ProxyCheck verifies that an HTTP proxy actually forwards requests by
// fetching a well-known URL through it.
type ProxyCheck struct {
	Proxy   config.Proxy
	URL     string        // well-known URL to request
	Timeout time.Duration // 0 = no bound
	Logger  *util.Logger
}

// Run reports whether the proxy answered with a usable status.  Any
// 2xx or 3xx counts; a 4xx, a 5xx, or failing to reach the proxy at
// all does not.
func (p *ProxyCheck) Run(ctx context.Context) bool {
	transport := &http.Transport{Proxy: http.ProxyURL(p.Proxy.URL())}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   p.Timeout,
		// A redirect answer is already the signal; never follow it.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	p.Logger.Verbose("checking HTTP proxy %s", p.Proxy.Addr())

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		p.Logger.Debug("proxy check: %v", err)
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		// Connection-level failures are the hardest to diagnose
		// remotely, so surface the whole error chain.
		p.Logger.Debug("proxy check: could not connect: %v", err)
		return false
	}
	resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		p.Logger.Debug("proxy check: %s", resp.Status)
		return true
	}
	p.Logger.Debug("proxy check: rejected: %s", resp.Status)
	return false
}
