package statusman

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Order is one configured latency-measurement job, read from a single file
// in the orders dir. The filename is the order id.
type Order struct {
	ID        string
	User      string
	Probe     string
	Step      int
	Pings     int
	ProbeHost string

	// SortKey is computed once at load time and never changes afterwards.
	SortKey string

	// ProbeSection is the raw config section named after the probe, kept
	// around for probe-specific report annotations.
	ProbeSection map[string]interface{}

	// Result is the last persisted measurement, nil if none exists.
	Result *Result
}

// Spool is the set of valid orders of one report run.
type Spool struct {
	Orders map[string]*Order

	// WideHosts is set when at least one order targets an IPv6 literal, so
	// the report can widen the host column for the whole run.
	WideHosts bool
}

// LoadOrders reads every regular file in dir as one order record. Records
// that cannot be parsed or carry no user are logged and skipped, they never
// abort the run. Only a dir that cannot be read at all is a hard error.
func LoadOrders(dir string) (*Spool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read orders dir %s", dir)
	}

	spool := &Spool{Orders: map[string]*Order{}}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("orders: failed to read %s: %s", path, err.Error())
			continue
		}

		var rec map[string]interface{}
		if err := yaml.Unmarshal(data, &rec); err != nil {
			log.Warnf("orders: failed to parse %s: %s", path, err.Error())
			continue
		}

		user := stringField(rec, "user")
		if user == "" {
			log.Warnf("orders: skipping %s: no user set", path)
			continue
		}

		order := &Order{
			ID:    entry.Name(),
			User:  user,
			Probe: stringField(rec, "probe"),
			Step:  intField(rec, "step"),
			Pings: intField(rec, "pings"),
		}

		order.ProbeSection = probeSection(rec, order.Probe)
		order.ProbeHost = stringField(order.ProbeSection, "host")

		if order.ProbeHost != "" {
			sortable, isIPv6 := sortableHost(order.ProbeHost)
			if isIPv6 {
				spool.WideHosts = true
			}
			order.SortKey = orderSortKey(sortable, order.Probe, order.Step, order.ID)
		} else {
			order.SortKey = orderSortKey("", order.Probe, order.Step, order.ID)
		}

		spool.Orders[order.ID] = order
	}

	return spool, nil
}

// probeSection resolves the nested section named after the probe value. The
// record layout is open-ended per probe type, so it stays a generic map.
func probeSection(rec map[string]interface{}, probe string) map[string]interface{} {
	if probe == "" {
		return nil
	}

	section, ok := rec[probe].(map[string]interface{})
	if !ok {
		return nil
	}

	return section
}

func stringField(rec map[string]interface{}, key string) string {
	if rec == nil {
		return ""
	}

	s, _ := rec[key].(string)

	return s
}

func intField(rec map[string]interface{}, key string) int {
	if rec == nil {
		return 0
	}

	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func floatField(rec map[string]interface{}, key string) (float64, bool) {
	if rec == nil {
		return 0, false
	}

	switch v := rec[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
