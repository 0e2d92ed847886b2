package chromedp_browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/repository"
)

func TestIdentityRotator_ProxiesRoundRobin(t *testing.T) {
	r := NewIdentityRotator([]string{"http://p1:8080", "http://p2:8080"}, nil)

	assert.Equal(t, "http://p1:8080", r.NextProxy())
	assert.Equal(t, "http://p2:8080", r.NextProxy())
	assert.Equal(t, "http://p1:8080", r.NextProxy())
}

func TestIdentityRotator_NoProxies(t *testing.T) {
	r := NewIdentityRotator(nil, nil)

	assert.Empty(t, r.NextProxy())
	assert.Contains(t, defaultUserAgents, r.UserAgent())
}

func TestIdentityRotator_CustomUserAgents(t *testing.T) {
	r := NewIdentityRotator(nil, []string{"agent-a"})
	assert.Equal(t, "agent-a", r.UserAgent())
}

func TestBuildClickScript_QuotesArguments(t *testing.T) {
	script, err := buildClickScript(repository.LoadMoreControl{Selector: `button[data-testid="load-more"]`, Text: "Load More"})
	require.NoError(t, err)

	assert.Contains(t, script, `})("button[data-testid=\"load-more\"]", "Load More")`)
}

func TestAllocatorOptions(t *testing.T) {
	b := NewBrowser(Options{Headless: true, ExecPath: "/usr/bin/chromium"}, zap.NewNop())

	base := len(b.allocatorOptions(""))
	assert.Equal(t, base+1, len(b.allocatorOptions("http://p1:8080")), "proxy adds one flag")
}

func TestScrollMetricsScript_UsesTallerOfBodyAndRoot(t *testing.T) {
	assert.Contains(t, scrollMetricsScript, "Math.max(")
	assert.Contains(t, scrollMetricsScript, "document.body.scrollHeight")
	assert.Contains(t, scrollMetricsScript, "document.documentElement.scrollHeight")
}
