package kafka

import "testing"

func TestTopicDerivation(t *testing.T) {
	cases := []struct {
		name      string
		prefix    string
		eventName string
		want      string
	}{
		{"prefixed", "stayly", "pricing.period_created", "stayly.pricing"},
		{"no prefix", "", "pricing.period_created", "pricing"},
		{"no dot in name", "stayly", "heartbeat", "stayly.heartbeat"},
		{"reservation events", "stayly", "reservation.requested", "stayly.reservation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := EventPublisher{TopicPrefix: tc.prefix}
			if got := p.topic(tc.eventName); got != tc.want {
				t.Fatalf("topic(%q) = %q, want %q", tc.eventName, got, tc.want)
			}
		})
	}
}
