package statusman

// a mock measurement spool, fills the orders and output dirs with the kind
// of files a real probe runner would leave behind

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type MockSpool struct {
	OrdersDir string
	OutputDir string
	Users     []string
}

func NewMockSpool(ordersDir string, outputDir string) *MockSpool {
	return &MockSpool{
		OrdersDir: ordersDir,
		OutputDir: outputDir,
		Users:     []string{"alice", "bob", "monitoring"},
	}
}

// Generate writes n order files plus one corrupt one, and a last result for
// most of them. The targets rotate through IPv4, IPv6, hostname and no host
// at all so every report path shows up.
func (ms *MockSpool) Generate(n int) error {
	if err := os.MkdirAll(ms.OrdersDir, 0755); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		id := newOrderID()
		user := ms.Users[i%len(ms.Users)]
		step := stepPool[rand.Intn(len(stepPool))]
		pings := pingsPool[rand.Intn(len(pingsPool))]

		probe := "fping"
		var host string
		switch i % 4 {
		case 0:
			host = ipv4Pool[rand.Intn(len(ipv4Pool))]
		case 1:
			probe = "fping6"
			host = ipv6Pool[rand.Intn(len(ipv6Pool))]
		case 2:
			host = hostnamePool[rand.Intn(len(hostnamePool))]
		case 3:
			// every fourth order has no target yet
		}

		rec := map[string]interface{}{
			"user":  user,
			"probe": probe,
			"step":  step,
			"pings": pings,
		}

		if host != "" {
			section := map[string]interface{}{"host": host}
			switch i % 8 {
			case 0:
				section["interface"] = "eth0"
			case 4:
				section["source"] = "10.0.0.2"
			}
			rec[probe] = section
		}

		if err := ms.writeOrder(id, rec); err != nil {
			return err
		}

		if i%7 == 3 {
			// every seventh order never got measured
			continue
		}

		loss := rand.Intn(pings + 1)
		res := map[string]interface{}{
			"updated": time.Now().Unix() - int64(rand.Intn(3*step)),
			"loss":    loss,
		}
		if loss < pings {
			res["median"] = 0.008 + rand.Float64()*0.2
		}

		if err := ms.writeResult(id, res); err != nil {
			return err
		}
	}

	// one unparsable file to exercise the loader's skip path
	corrupt := filepath.Join(ms.OrdersDir, newOrderID())
	return os.WriteFile(corrupt, []byte("user: [unterminated\n"), 0644)
}

func (ms *MockSpool) writeOrder(id string, rec map[string]interface{}) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ms.OrdersDir, id), data, 0644)
}

func (ms *MockSpool) writeResult(id string, rec map[string]interface{}) error {
	dir := filepath.Join(ms.OutputDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "last_result"), data, 0644)
}

func newOrderID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

var (
	ipv4Pool = []string{
		"8.8.8.8",
		"8.8.4.4",
		"1.1.1.1",
		"9.9.9.9",
		"192.168.1.1",
		"10.11.0.5",
		"45.225.123.88",
		"212.91.32.6",
	}
	ipv6Pool = []string{
		"2001:4860:4860::8888",
		"2001:4860:4860::8844",
		"2606:4700:4700::1111",
		"2a00:1450:4001:80e::200e",
		"fe80::1",
	}
	hostnamePool = []string{
		"www.google.com",
		"github.com",
		"dns.google",
		"h1.hostgum.eu",
		"lameduck.hostgum.eu",
		"ns1.artechinfo.in",
	}
	stepPool  = []int{30, 60, 300}
	pingsPool = []int{2, 3, 5, 10, 20}
)
