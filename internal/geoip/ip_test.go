package geoip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPublicIP(t *testing.T) {
	cases := map[string]bool{
		"1.2.3.4":              true,
		"8.8.8.8:53":           true,
		"41.186.0.1":           true,
		"2606:4700:4700::1111": true,
		"[2606:4700::1]:443":   true,
		"":                     false,
		"not-an-ip":            false,
		"999.1.1.1":            false,
		"10.0.0.1":             false,
		"172.16.5.4":           false,
		"192.168.1.1":          false,
		"127.0.0.1":            false,
		"0.0.0.0":              false,
		"169.254.1.1":          false,
		"100.64.0.1":           false,
		"192.0.2.10":           false,
		"198.51.100.7":         false,
		"203.0.113.9":          false,
		"198.18.0.1":           false,
		"224.0.0.1":            false,
		"240.0.0.1":            false,
		"255.255.255.255":      false,
		"::1":                  false,
		"::":                   false,
		"fe80::1":              false,
		"fd00::1":              false,
		"ff02::1":              false,
		"2001:db8::1":          false,
		"::ffff:192.168.0.1":   false,
		"::ffff:1.2.3.4":       true,
	}
	for ip, want := range cases {
		require.Equal(t, want, IsPublicIP(ip), ip)
	}
}

func TestNormalizeIP(t *testing.T) {
	require.Equal(t, "1.2.3.4", NormalizeIP("1.2.3.4:5555"))
	require.Equal(t, "1.2.3.4", NormalizeIP(" 1.2.3.4 "))
	require.Equal(t, "::1", NormalizeIP("[::1]:80"))
	require.Equal(t, "::1", NormalizeIP("[::1]"))
	require.Equal(t, "2001:db8::1", NormalizeIP("2001:db8::1"))
}
