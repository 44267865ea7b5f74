package orders

import "testing"

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusInReview},
		{StatusPending, StatusRejected},
		{StatusInReview, StatusProcessing},
		{StatusInReview, StatusRejected},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusRejected},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCompleted},
		{StatusInReview, StatusCompleted},
		{StatusInReview, StatusPending},
		{StatusProcessing, StatusPending},
		{StatusProcessing, StatusInReview},
		{StatusCompleted, StatusRejected},
		{StatusCompleted, StatusProcessing},
		{StatusRejected, StatusPending},
		{StatusRejected, StatusCompleted},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInReview, StatusProcessing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}
