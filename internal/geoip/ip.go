package geoip

import (
	"net/netip"
	"strings"
)

// 公网判定之外额外排除的保留段
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),   // CGNAT
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF 协议分配
	netip.MustParsePrefix("192.0.2.0/24"),    // TEST-NET-1
	netip.MustParsePrefix("198.18.0.0/15"),   // 基准测试
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3
	netip.MustParsePrefix("240.0.0.0/4"),     // 含 255.255.255.255
	netip.MustParsePrefix("2001:db8::/32"),   // 文档
	netip.MustParsePrefix("64:ff9b:1::/48"),
	netip.MustParsePrefix("100::/64"), // 丢弃前缀
}

// NormalizeIP 去掉端口与方括号，例如 "1.2.3.4:8080" -> "1.2.3.4"，"[::1]:80" -> "::1"
func NormalizeIP(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if idx := strings.LastIndex(s, "]:"); idx != -1 {
			return s[1:idx]
		}
		return strings.Trim(s, "[]")
	}
	// 只有一个冒号时才是 host:port，否则可能是裸 IPv6
	if strings.Count(s, ":") == 1 {
		return s[:strings.LastIndex(s, ":")]
	}
	return s
}

// IsPublicIP 判断是否为可查询地理位置的公网地址
// 非法、私有、回环、链路本地、组播、未指定以及各类保留地址都返回 false
func IsPublicIP(s string) bool {
	addr, err := netip.ParseAddr(NormalizeIP(s))
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	if addr.IsPrivate() ||
		addr.IsLoopback() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified() {
		return false
	}

	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return addr.IsGlobalUnicast()
}
