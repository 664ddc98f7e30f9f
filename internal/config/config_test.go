package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadGatewayDefaults(t *testing.T) {
	for _, key := range []string{
		"TEMPGW_LISTEN_ADDR", "TEMPGW_RADIO_PORT", "TEMPGW_RADIO_BAUD",
		"TEMPGW_MQTT_BROKER", "TEMPGW_KAFKA_BROKERS", "TEMPGW_INFLUX_URL",
		"TEMPGW_PROPERTIES", "TEMPGW_READ_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("LoadGateway: %v", err)
	}
	if cfg.ListenAddr != ":8090" {
		t.Errorf("ListenAddr = %q, want :8090", cfg.ListenAddr)
	}
	if cfg.ModemPath != DefaultGatewayModem || cfg.ModemBaud != DefaultModemBaud {
		t.Errorf("modem = %q/%d, want %q/%d", cfg.ModemPath, cfg.ModemBaud, DefaultGatewayModem, DefaultModemBaud)
	}
	if cfg.MQTTBroker != "" || cfg.InfluxURL != "" || len(cfg.KafkaBrokers) != 0 {
		t.Errorf("sinks enabled by default: %+v", cfg)
	}
	if cfg.MQTTTopic != "home/sensors" || cfg.InfluxDB != "home" || cfg.KafkaTopic != "sensor.readings" {
		t.Errorf("sink defaults = %q/%q/%q", cfg.MQTTTopic, cfg.InfluxDB, cfg.KafkaTopic)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s", cfg.ReadTimeout)
	}
}

func TestLoadGatewayFromEnv(t *testing.T) {
	t.Setenv("TEMPGW_LISTEN_ADDR", ":9999")
	t.Setenv("TEMPGW_RADIO_BAUD", "2400")
	t.Setenv("TEMPGW_KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("TEMPGW_READ_TIMEOUT", "500ms")

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("LoadGateway: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.ModemBaud != 2400 {
		t.Errorf("ModemBaud = %d, want 2400", cfg.ModemBaud)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "k1:9092" || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v, want trimmed pair", cfg.KafkaBrokers)
	}
	if cfg.ReadTimeout != 500*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 500ms", cfg.ReadTimeout)
	}
}

func TestLoadGatewayProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.properties")
	content := `# sensor locations
sensor.533 = attic
sensor.534=garage

// ignored comment style
sensor.bad=nowhere
sensor.535=
not a key value line
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEMPGW_PROPERTIES", path)

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("LoadGateway: %v", err)
	}
	if got := cfg.Label(533); got != "attic" {
		t.Errorf("Label(533) = %q, want attic", got)
	}
	if got := cfg.Label(534); got != "garage" {
		t.Errorf("Label(534) = %q, want garage", got)
	}
	if got := cfg.Label(999); got != "999" {
		t.Errorf("Label(999) = %q, want decimal fallback", got)
	}
	if len(cfg.SensorLabels) != 2 {
		t.Errorf("SensorLabels = %v, want the two valid entries", cfg.SensorLabels)
	}
}

func TestLoadGatewayMissingProperties(t *testing.T) {
	t.Setenv("TEMPGW_PROPERTIES", filepath.Join(t.TempDir(), "absent.properties"))

	if _, err := LoadGateway(); err == nil {
		t.Fatal("LoadGateway = nil error for a missing properties file")
	}
}

func TestBuildEpoch(t *testing.T) {
	old := buildEpoch
	defer func() { buildEpoch = old }()

	for _, tc := range []struct {
		name  string
		stamp string
		want  int64
	}{
		{"unstamped", "", fallbackBuildEpoch},
		{"stamped", "1755800000", 1755800000},
		{"garbage", "next tuesday", fallbackBuildEpoch},
		{"negative", "-5", fallbackBuildEpoch},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buildEpoch = tc.stamp
			if got := BuildEpoch(); got != tc.want {
				t.Fatalf("BuildEpoch() = %d, want %d", got, tc.want)
			}
		})
	}
}
