package repository_test

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/tweet-discussion-api/internal/metrics"
)

// remoteCallCount reads the remote call counter for op and outcome from m's registry
func remoteCallCount(t *testing.T, m *metrics.Metrics, op, outcome string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "tweets_remote_calls_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if hasLabels(metric, op, outcome) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func hasLabels(metric *dto.Metric, op, outcome string) bool {
	var gotOp, gotOutcome bool
	for _, lp := range metric.GetLabel() {
		switch {
		case lp.GetName() == "operation" && lp.GetValue() == op:
			gotOp = true
		case lp.GetName() == "outcome" && lp.GetValue() == outcome:
			gotOutcome = true
		}
	}
	return gotOp && gotOutcome
}
