package chromedp_browser

import (
	"math/rand/v2"
	"sync"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// IdentityRotator hands out proxies in turn and user agents at random.
type IdentityRotator struct {
	proxies    []string
	userAgents []string
	mu         sync.Mutex
	proxyIndex int
}

// NewIdentityRotator uses the built-in user agents when userAgents is empty.
// With no proxies, pages connect directly.
func NewIdentityRotator(proxies, userAgents []string) *IdentityRotator {
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &IdentityRotator{proxies: proxies, userAgents: userAgents}
}

// NextProxy returns a proxy URL from the list, rotating sequentially.
func (m *IdentityRotator) NextProxy() string {
	if len(m.proxies) == 0 {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	proxy := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return proxy
}

// UserAgent returns a random user agent string.
func (m *IdentityRotator) UserAgent() string {
	return m.userAgents[rand.IntN(len(m.userAgents))]
}
