package statusman

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Result is the most recent measurement snapshot of one order, written by
// the measurement subsystem to <output_dir>/<order_id>/last_result.
type Result struct {
	// Updated is the epoch timestamp of the last measurement.
	Updated int64

	// Median is the round-trip time in seconds. nil when every probe of the
	// last cycle failed.
	Median *float64

	// Loss counts the failed probes out of the order's pings.
	Loss int
}

// AttachResults reads the last result of every order in the spool. A missing
// result file is normal for fresh orders. An unreadable one is logged and
// treated as missing, the order itself stays in the report.
func (s *Spool) AttachResults(outputDir string) {
	for _, order := range s.Orders {
		path := filepath.Join(outputDir, order.ID, "last_result")

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			log.Warnf("results: failed to read %s: %s", path, err.Error())
			continue
		}

		var rec map[string]interface{}
		if err := yaml.Unmarshal(data, &rec); err != nil {
			log.Warnf("results: failed to parse %s: %s", path, err.Error())
			continue
		}

		result := &Result{
			Updated: int64(intField(rec, "updated")),
			Loss:    intField(rec, "loss"),
		}

		if median, ok := floatField(rec, "median"); ok {
			result.Median = &median
		}

		order.Result = result
	}
}
