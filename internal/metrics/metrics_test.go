package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestStateGaugesEvaluateAtScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	stored := 3.0
	calls := 0
	RegisterStateGauges(reg,
		func() float64 { calls++; return stored },
		func() float64 { return 2 },
	)
	if calls != 0 {
		t.Fatalf("gauge evaluated at registration")
	}

	gather := func() map[string]float64 {
		mfs, err := reg.Gather()
		if err != nil {
			t.Fatal(err)
		}
		out := map[string]float64{}
		for _, mf := range mfs {
			out[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
		return out
	}

	got := gather()
	if got["jobboard_jobs_stored"] != 3 || got["jobboard_event_subscribers"] != 2 {
		t.Fatalf("gauges = %v", got)
	}

	stored = 5
	if got := gather(); got["jobboard_jobs_stored"] != 5 {
		t.Fatalf("stored = %v", got["jobboard_jobs_stored"])
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}
