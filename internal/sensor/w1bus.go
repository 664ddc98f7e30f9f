package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// w1Families lists the 1-wire family codes of supported thermometer chips:
// DS18S20, DS1822, DS18B20.
var w1Families = []string{"10-", "22-", "28-"}

// W1Bus reads DS18x20 thermometers through the Linux w1 sysfs interface.
// The kernel driver performs the actual conversion while the w1_slave file
// is read, so Convert only refreshes the device list.
type W1Bus struct {
	dir     string
	devices []string
}

// NewW1Bus scans dir (normally /sys/bus/w1/devices) for thermometer
// devices. A scan failure is not fatal here; the boot diagnostic reports
// Devices() == 0 and every read yields the sentinel.
func NewW1Bus(dir string) *W1Bus {
	b := &W1Bus{dir: dir}
	_ = b.Convert()
	return b
}

func (b *W1Bus) Convert() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		b.devices = nil
		return fmt.Errorf("scan w1 bus %s: %w", b.dir, err)
	}
	var found []string
	for _, e := range entries {
		name := e.Name()
		for _, fam := range w1Families {
			if strings.HasPrefix(name, fam) {
				found = append(found, name)
				break
			}
		}
	}
	sort.Strings(found)
	b.devices = found
	return nil
}

func (b *W1Bus) ReadCelsius(index int) float64 {
	if index < 0 || index >= len(b.devices) {
		return DisconnectedC
	}
	raw, err := os.ReadFile(filepath.Join(b.dir, b.devices[index], "w1_slave"))
	if err != nil {
		return DisconnectedC
	}
	c, err := parseW1Slave(string(raw))
	if err != nil {
		return DisconnectedC
	}
	return c
}

func (b *W1Bus) Devices() int { return len(b.devices) }

// parseW1Slave extracts the temperature from the two-line w1_slave format:
//
//	50 05 4b 46 7f ff 0c 10 1c : crc=1c YES
//	50 05 4b 46 7f ff 0c 10 1c t=21530
//
// The first line carries the CRC verdict, the second the reading in
// millidegrees Celsius.
func parseW1Slave(s string) (float64, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("w1_slave: want 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, fmt.Errorf("w1_slave: crc check failed")
	}
	pos := strings.LastIndex(lines[1], "t=")
	if pos < 0 {
		return 0, fmt.Errorf("w1_slave: no temperature field")
	}
	milli, err := strconv.Atoi(strings.TrimSpace(lines[1][pos+2:]))
	if err != nil {
		return 0, fmt.Errorf("w1_slave: bad temperature field: %w", err)
	}
	return float64(milli) / 1000.0, nil
}
