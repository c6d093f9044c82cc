package statusman

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/go-ping/ping"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/icmp"
)

// hostMeasurement is one finished ping cycle against one order's target.
type hostMeasurement struct {
	orderID  string
	updated  int64
	median   float64
	received int
	loss     int
}

// MeasureHosts pings every dotted-quad target currently in the orders dir
// and persists a last_result record per order, the same layout the real
// measurement subsystem leaves behind. Orders without an IPv4 target keep
// whatever result they already have.
func (ms *MockSpool) MeasureHosts(timeout time.Duration) error {
	spool, err := LoadOrders(ms.OrdersDir)
	if err != nil {
		return err
	}

	privileged := CheckIfRawICMPAvailable() || runtime.GOOS == "windows"
	if !privileged && !CheckIfRootlessICMPAvailable() {
		log.Warnln("neither raw nor rootless ICMP is available, expect failed pings")
	}

	resultC := make(chan hostMeasurement, len(spool.Orders))

	wg := new(sync.WaitGroup)
	for _, order := range spool.Orders {
		if order.Pings <= 0 || !ipv4HostRegexp.MatchString(order.ProbeHost) {
			continue
		}

		pinger, err := ping.NewPinger(order.ProbeHost)
		if err != nil {
			log.WithError(err).Warningln("failed to parse host for ICMP ping")
			continue
		}
		pinger.SetPrivileged(privileged)
		pinger.Timeout = timeout
		pinger.Interval = 200 * time.Millisecond
		pinger.Count = order.Pings

		wg.Add(1)
		go func(orderID string, pings int) {
			defer wg.Done()
			if err := pinger.Run(); err != nil {
				log.WithError(err).Warningf("ping cycle of order %s failed", orderID)
				return
			}
			stats := pinger.Statistics()
			resultC <- hostMeasurement{
				orderID:  orderID,
				updated:  time.Now().Unix(),
				median:   medianRtt(stats.Rtts).Seconds(),
				received: stats.PacketsRecv,
				loss:     pings - stats.PacketsRecv,
			}
		}(order.ID, order.Pings)
	}

	go func() {
		wg.Wait()
		close(resultC)
	}()

	for m := range resultC {
		rec := map[string]interface{}{
			"updated": m.updated,
			"loss":    m.loss,
		}
		if m.received > 0 {
			rec["median"] = m.median
		}

		if err := ms.writeResult(m.orderID, rec); err != nil {
			return err
		}
	}

	return nil
}

// medianRtt returns the middle round-trip time, for even counts the mean of
// the two middle ones.
func medianRtt(rtts []time.Duration) time.Duration {
	if len(rtts) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(rtts))
	copy(sorted, rtts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}

	return sorted[middle]
}

func CheckIfRawICMPAvailable() bool {
	conn, err := icmp.ListenPacket("ip4:1", "0.0.0.0")
	if err != nil {
		return false
	}

	conn.Close()
	return true
}

func CheckIfRootlessICMPAvailable() bool {
	conn, err := icmp.ListenPacket("udp4", "0.0.0.0")
	if err != nil {
		return false
	}

	conn.Close()
	return true
}
