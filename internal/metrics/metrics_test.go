package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Projections.WithLabelValues("inbound_connector", "create").Inc()
	m.Commands.WithLabelValues("transport_rule", "update", "ok").Add(2)
	m.Skipped.WithLabelValues("anti_spam_policy").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Projections.WithLabelValues("inbound_connector", "create")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Commands.WithLabelValues("transport_rule", "update", "ok")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Projections)+testutil.CollectAndCount(m.Commands)+testutil.CollectAndCount(m.Skipped))
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Skipped.WithLabelValues("inbound_connector").Inc()

	path := filepath.Join(t.TempDir(), "mailroute.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mailroute_skipped_total{kind="inbound_connector"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}
