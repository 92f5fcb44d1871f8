package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for requests that never consume a token.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the rule for a request, or nil when the default limit applies.
// An exact path rule wins over prefix rules (paths ending in "/"); among prefix
// rules the longest one wins, so "/assist/" covers "/assist/draft" unless a more
// specific prefix is configured. Health checks and CORS preflights are unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		u := unlimited
		return &u
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
