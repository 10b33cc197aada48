package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Rotator hands out outbound proxies round-robin.
type Rotator struct {
	proxies []*url.URL
	mu      sync.Mutex
	next    int
}

// NewRotator parses the proxy URLs. Blank entries are ignored.
func NewRotator(raw []string) (*Rotator, error) {
	r := &Rotator{}
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", s)
		}
		r.proxies = append(r.proxies, u)
	}
	return r, nil
}

func (r *Rotator) Len() int {
	return len(r.proxies)
}

// Next returns the next proxy in sequence, or nil when none are configured.
func (r *Rotator) Next() *url.URL {
	if len(r.proxies) == 0 {
		return nil // No proxy
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.proxies[r.next]
	r.next = (r.next + 1) % len(r.proxies)
	return p
}

// Proxy satisfies http.Transport.Proxy.
func (r *Rotator) Proxy(*http.Request) (*url.URL, error) {
	return r.Next(), nil
}

// Transport returns a clone of http.DefaultTransport routed through r.
func (r *Rotator) Transport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = r.Proxy
	return t
}
