package statusman

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type Statusman struct {
	Config *Config
}

func New(cfg *Config) *Statusman {
	sm := &Statusman{
		Config: cfg,
	}

	if cfg.LogFile != "" {
		err := addLogFileHook(cfg.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			log.Error("Can't write logs to file: ", err.Error())
		}
	}

	sm.SetLogLevel(cfg.LogLevel)

	return sm
}

// GenerateReport loads all orders from the orders dir, merges in the last
// results from the output dir and writes the rendered report to w.
func (sm *Statusman) GenerateReport(w io.Writer) error {
	spool, err := LoadOrders(sm.Config.OrdersDir)
	if err != nil {
		return err
	}

	spool.AttachResults(sm.Config.OutputDir)

	report := NewReport(spool, NewStyler(sm.Config.ColorMode, w))
	report.Render(w)

	return nil
}
