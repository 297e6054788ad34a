package ratelimit

import "strings"

// MatchEndpoint finds the most specific endpoint config for a request.
// Longer path prefixes win; a nil return means the default limit applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	var best *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if !strings.HasPrefix(path, ec.Path) {
			continue
		}
		if best == nil || len(ec.Path) > len(best.Path) {
			best = ec
		}
	}
	return best
}
