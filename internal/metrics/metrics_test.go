package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitializeMetricsPrepopulatesLabels(t *testing.T) {
	InitializeMetrics()

	if n := testutil.CollectAndCount(RecentsAdmissionsTotal); n != 4 {
		t.Errorf("RecentsAdmissionsTotal series = %d, want 4", n)
	}
	if n := testutil.CollectAndCount(ShellNotificationsTotal); n != 3 {
		t.Errorf("ShellNotificationsTotal series = %d, want 3", n)
	}
	if n := testutil.CollectAndCount(PlaylistMaterializationsTotal); n != 2 {
		t.Errorf("PlaylistMaterializationsTotal series = %d, want 2", n)
	}
}

func TestInitializeMetricsIsIdempotent(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("InitializeMetrics panicked on second call: %v", r)
		}
	}()
	InitializeMetrics()
	InitializeMetrics()
}

func TestAdmissionCounterIncrements(t *testing.T) {
	before := testutil.ToFloat64(RecentsAdmissionsTotal.WithLabelValues(AdmissionFiltered))
	RecentsAdmissionsTotal.WithLabelValues(AdmissionFiltered).Inc()
	after := testutil.ToFloat64(RecentsAdmissionsTotal.WithLabelValues(AdmissionFiltered))

	if after-before != 1 {
		t.Errorf("filtered admissions delta = %v, want 1", after-before)
	}
}
