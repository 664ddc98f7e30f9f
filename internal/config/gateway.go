package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GatewayConfig holds the runtime configuration of the receiving gateway.
// Everything comes from env plus an optional properties file with per-sensor
// location labels.
type GatewayConfig struct {
	ListenAddr string
	ModemPath  string
	ModemBaud  int

	MQTTBroker   string // empty disables the MQTT sink
	MQTTTopic    string // topic prefix, e.g. home/sensors
	MQTTClientID string

	InfluxURL      string // empty disables the InfluxDB sink
	InfluxDB       string
	InfluxUser     string
	InfluxPassword string

	KafkaBrokers []string // empty disables the Kafka sink
	KafkaTopic   string

	PropertiesPath string
	SensorLabels   map[int]string // sensorIndex -> location label

	ReadTimeout time.Duration
}

// LoadGateway builds the gateway configuration from env and the optional
// properties file.
func LoadGateway() (*GatewayConfig, error) {
	cfg := &GatewayConfig{
		ListenAddr:     getEnv("TEMPGW_LISTEN_ADDR", ":8090"),
		ModemPath:      getEnv("TEMPGW_RADIO_PORT", DefaultGatewayModem),
		ModemBaud:      getEnvInt("TEMPGW_RADIO_BAUD", DefaultModemBaud),
		MQTTBroker:     os.Getenv("TEMPGW_MQTT_BROKER"),
		MQTTTopic:      getEnv("TEMPGW_MQTT_TOPIC", "home/sensors"),
		MQTTClientID:   getEnv("TEMPGW_MQTT_CLIENT_ID", "tempgw"),
		InfluxURL:      os.Getenv("TEMPGW_INFLUX_URL"),
		InfluxDB:       getEnv("TEMPGW_INFLUX_DB", "home"),
		InfluxUser:     os.Getenv("TEMPGW_INFLUX_USER"),
		InfluxPassword: os.Getenv("TEMPGW_INFLUX_PASSWORD"),
		KafkaBrokers:   splitAndTrim(os.Getenv("TEMPGW_KAFKA_BROKERS"), ","),
		KafkaTopic:     getEnv("TEMPGW_KAFKA_TOPIC", "sensor.readings"),
		PropertiesPath: os.Getenv("TEMPGW_PROPERTIES"),
		SensorLabels:   map[int]string{},
		ReadTimeout:    getEnvDuration("TEMPGW_READ_TIMEOUT", 2*time.Second),
	}

	if cfg.PropertiesPath != "" {
		if err := cfg.loadProperties(cfg.PropertiesPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadProperties reads key=value lines. Lines starting with # or // are
// comments. Recognized keys: sensor.<index>=<label>.
func (c *GatewayConfig) loadProperties(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open properties file %s: %w", path, err)
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)

		if idxStr, found := strings.CutPrefix(k, "sensor."); found {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || v == "" {
				continue
			}
			c.SensorLabels[idx] = v
		}
	}
	return s.Err()
}

// Label returns the configured location label for a sensor index, or the
// index itself in decimal form when no label is set.
func (c *GatewayConfig) Label(sensorIndex int) string {
	if l, ok := c.SensorLabels[sensorIndex]; ok {
		return l
	}
	return strconv.Itoa(sensorIndex)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, sep) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
