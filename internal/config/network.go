// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// validateOrigin accepts a bare browser origin: http or https scheme, a host,
// and nothing after it but an optional "/".
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS_ORIGINS entry %q: %w", origin, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("CORS_ORIGINS entry %q: scheme must be http or https", origin)
	case u.Host == "":
		return fmt.Errorf("CORS_ORIGINS entry %q: host is required", origin)
	case u.User != nil:
		return fmt.Errorf("CORS_ORIGINS entry %q: credentials are not allowed", origin)
	case u.Path != "" && u.Path != "/", u.RawQuery != "", u.Fragment != "":
		return fmt.Errorf("CORS_ORIGINS entry %q: must be an origin without path, query or fragment", origin)
	}
	return nil
}

// validateTrustedProxy accepts an IP address or a CIDR block.
func validateTrustedProxy(entry string) error {
	if strings.Contains(entry, "/") {
		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not a valid CIDR", entry)
		}
		return nil
	}
	if net.ParseIP(entry) == nil {
		return fmt.Errorf("TRUSTED_PROXIES entry %q is not a valid IP address", entry)
	}
	return nil
}
