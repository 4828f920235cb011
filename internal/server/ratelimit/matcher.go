package ratelimit

import "strings"

// unlimited marks an endpoint that is never throttled.
var unlimited = EndpointConfig{}

// MatchEndpoint finds the config governing a request. Exact path matches win;
// configs whose path ends in "/" act as prefix rules (so "/history/" covers
// "/history/{id}/regenerate"). Health checks are never limited. Returns nil
// when no rule applies, which sends the caller to the default limit.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	var prefixHit *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if ec.Path == path {
			return ec
		}
		if prefixHit == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			prefixHit = ec
		}
	}
	return prefixHit
}
