package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m30s"},
		{59 * time.Minute, "59m0s"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatDuration(tc.in))
	}
}
