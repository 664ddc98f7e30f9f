package sink

import (
	"encoding/json"
	"testing"
	"time"
)

// Downstream consumers parse this shape off MQTT and Kafka; field names are a
// contract, not an implementation detail.
func TestReadingJSONContract(t *testing.T) {
	r := Reading{
		ID:          "9f1c1c2a-7a33-4a3b-9c55-0e6a2f9c0d11",
		SensorIndex: 533,
		DeviceType:  80,
		Label:       "attic",
		Celsius:     21.5,
		ReceivedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"9f1c1c2a-7a33-4a3b-9c55-0e6a2f9c0d11","sensor":533,"device_type":80,` +
		`"label":"attic","celsius":21.5,"received_at":"2026-01-01T00:00:00Z"}`
	if string(got) != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}
