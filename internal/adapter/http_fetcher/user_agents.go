package http_fetcher

import (
	"math/rand"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:130.0) Gecko/20100101 Firefox/130.0",
}

// userAgentPool hands out a random browser user agent per request. Some news
// sites serve stripped pages to unknown clients.
type userAgentPool struct {
	agents []string
}

func newUserAgentPool(agents []string) *userAgentPool {
	if len(agents) == 0 {
		agents = defaultUserAgents
	}
	return &userAgentPool{agents: agents}
}

func (p *userAgentPool) next() string {
	return p.agents[rand.Intn(len(p.agents))]
}
