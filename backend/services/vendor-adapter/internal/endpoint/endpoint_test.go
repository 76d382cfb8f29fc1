package endpoint

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendoradapter/backend/services/vendor-adapter/internal/schema"
)

func TestBuild(t *testing.T) {
	cases := map[string]struct {
		base     string
		segments []string
		want     string
	}{
		"plain base": {
			base:     "https://apitest.chargemod.com",
			segments: []string{"chargemod", "start-charging"},
			want:     "https://apitest.chargemod.com/chargemod/start-charging",
		},
		"trailing slash on base": {
			base:     "https://apitest.chargemod.com/",
			segments: []string{"chargemod", "stations"},
			want:     "https://apitest.chargemod.com/chargemod/stations",
		},
		"base with path prefix": {
			base:     "https://vendor.example/api/v2",
			segments: []string{"chargemod", "charging-activities", "7"},
			want:     "https://vendor.example/api/v2/chargemod/charging-activities/7",
		},
		"segment with dots inside": {
			base:     "http://localhost:8080",
			segments: []string{"chargemod", "charging-activities", "a..b"},
			want:     "http://localhost:8080/chargemod/charging-activities/a..b",
		},
		"empty extra segment skipped": {
			base:     "http://localhost:8080",
			segments: []string{"chargemod", "charging-activities", ""},
			want:     "http://localhost:8080/chargemod/charging-activities",
		},
		"extra segment escaped": {
			base:     "http://localhost:8080",
			segments: []string{"chargemod", "charging-activities", "a b"},
			want:     "http://localhost:8080/chargemod/charging-activities/a%20b",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ep, err := Build(tc.base, http.MethodGet, tc.segments...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ep.URL())
			assert.Equal(t, http.MethodGet, ep.Method())
		})
	}
}

func TestBuildIsPure(t *testing.T) {
	a, err := Build("https://x.example", http.MethodPost, "chargemod", "stop-charging")
	require.NoError(t, err)
	b, err := Build("https://x.example", http.MethodPost, "chargemod", "stop-charging")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildRejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "apitest.chargemod.com", "ftp://x.example", "://bad"} {
		_, err := Build(base, http.MethodGet, "chargemod")
		assert.True(t, errors.Is(err, schema.ErrInvalidRequest), "base %q", base)
	}
}

func TestBuildRejectsUnsafeSegments(t *testing.T) {
	for _, seg := range []string{"..", ".", "../start-charging", "a/b", "/x", "x/", `a\b`} {
		_, err := Build("https://v.example/api", http.MethodGet, "chargemod", "charging-activities", seg)
		var verr *schema.ValidationError
		require.True(t, errors.As(err, &verr), "segment %q", seg)
		assert.Equal(t, "path", verr.Fields[0].Field)
		assert.Equal(t, "segment", verr.Fields[0].Rule)
	}
}
