package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyHeaders are read in order when the proxy is trusted.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// StripPort returns the host of "host:port", "[v6]:port", "[v6]" or a bare host.
func StripPort(hostport string) string {
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		return h
	}
	return strings.Trim(hostport, "[]")
}

// ClientIP returns the address that login throttling and the infra
// allow-list key on. Proxy headers count only when trustProxy is set, and
// only when they hold a valid IP; the left-most X-Forwarded-For entry wins.
// RemoteAddr is the last resort and is returned as is when it does not parse.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			first, _, _ := strings.Cut(r.Header.Get(h), ",")
			if addr, ok := ParseAddr(first); ok {
				return addr.String()
			}
		}
	}
	if addr, ok := ParseAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return StripPort(r.RemoteAddr)
}

// ParseAddr parses an IP with an optional port. IPv4-mapped IPv6
// addresses are reported as plain IPv4.
func ParseAddr(s string) (netip.Addr, bool) {
	s = StripPort(strings.TrimSpace(s))
	if s == "" {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// AllowList matches addresses against single IPs and CIDR ranges.
type AllowList struct {
	prefixes []netip.Prefix
}

// NewAllowList parses entries. Entries that are neither an IP nor a CIDR
// are skipped and returned in rejected.
func NewAllowList(entries []string) (list *AllowList, rejected []string) {
	list = &AllowList{}
	for _, raw := range entries {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			list.prefixes = append(list.prefixes, p.Masked())
			continue
		}
		if addr, ok := ParseAddr(s); ok {
			list.prefixes = append(list.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		rejected = append(rejected, s)
	}
	return list, rejected
}

// Len returns the number of usable entries.
func (l *AllowList) Len() int {
	return len(l.prefixes)
}

// Contains reports whether ip falls in one of the entries.
func (l *AllowList) Contains(ip string) bool {
	addr, ok := ParseAddr(ip)
	if !ok {
		return false
	}
	for _, p := range l.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
