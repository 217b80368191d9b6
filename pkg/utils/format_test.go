package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatHMS(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{25 * time.Hour, "25:00:00"},
		{100*time.Hour + 59*time.Minute + 59*time.Second, "100:59:59"},
		{-5 * time.Second, "00:00:00"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FormatHMS(c.in), c.in.String())
	}
}
