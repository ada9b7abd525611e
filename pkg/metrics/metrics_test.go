package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)
	require.Panics(t, func() { RegisterCollectors(reg) })

	Operations.WithLabelValues("movie", "get", "ok").Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(Operations.WithLabelValues("movie", "get", "ok")))

	MovieCacheLookups.WithLabelValues("hit").Inc()
	n, err := testutil.GatherAndCount(reg, "cinenotes_movie_cache_lookups_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
