package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/cloudradar-monitoring/statusman"
	log "github.com/sirupsen/logrus"
)

func main() {

	rand.Seed(time.Now().UnixNano())

	ordersDirPtr := flag.String("orders", "./orders", "directory to write the order files to")
	outputDirPtr := flag.String("output", "./output", "directory to write the last_result files to")
	countPtr := flag.Int("n", 20, "number of orders to generate")
	measurePtr := flag.Bool("measure", false, "ping the generated IPv4 targets and persist real results")
	timeoutPtr := flag.Duration("timeout", 5*time.Second, "overall timeout of one ping cycle")

	flag.Parse()

	spool := statusman.NewMockSpool(*ordersDirPtr, *outputDirPtr)

	if err := spool.Generate(*countPtr); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("generated %d orders at %s\n", *countPtr, *ordersDirPtr)

	if !*measurePtr {
		return
	}

	if runtime.GOOS == "windows" && !statusman.CheckIfRawICMPAvailable() {
		fmt.Println("!!! You need to run mockspool as administrator in order to use ICMP ping on Windows !!!")
	}

	if runtime.GOOS == "linux" && !statusman.CheckIfRootlessICMPAvailable() && !statusman.CheckIfRawICMPAvailable() {
		fmt.Println(`⚠️ In order to perform rootless ICMP Ping on Linux you need to run this command first:
sudo sysctl -w net.ipv4.ping_group_range="0   2147483647"`)
	}

	if err := spool.MeasureHosts(*timeoutPtr); err != nil {
		log.Fatal(err)
	}
}
