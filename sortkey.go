package statusman

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ipv4HostRegexp = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
	ipv6HostRegexp = regexp.MustCompile(`^[0-9a-f:]+$`)
)

// sortableHost rewrites host so that byte-wise string comparison of the
// results matches numeric comparison of IP literals. IPv6 hosts get their
// hextets padded to 4 digits and an "a." prefix so they land in their own
// bucket after the dotted-quad ones. IPv4 hosts get their octets padded to
// 3 digits. Everything else passes through unchanged. The second return
// value reports whether host had the IPv6 shape.
func sortableHost(host string) (string, bool) {
	switch {
	case ipv6HostRegexp.MatchString(host):
		hextets := strings.Split(host, ":")
		for i := range hextets {
			hextets[i] = zeroPad(hextets[i], 4)
		}
		return "a." + strings.Join(hextets, ":"), true
	case ipv4HostRegexp.MatchString(host):
		octets := strings.Split(host, ".")
		for i := range octets {
			octets[i] = zeroPad(octets[i], 3)
		}
		return strings.Join(octets, "."), false
	default:
		return host, false
	}
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat("0", width-len(s)) + s
}

// orderSortKey builds the key orders are sorted by inside one user group.
// Hostless orders get the "ZZZ" prefix so they end up behind all orders
// that have a dotted-quad target.
func orderSortKey(host string, probe string, step int, id string) string {
	if host == "" {
		return fmt.Sprintf("ZZZ:%s:%d:%s", probe, step, id)
	}

	return fmt.Sprintf("%s:%s:%d:%s", host, probe, step, id)
}
