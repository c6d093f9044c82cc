package statusman

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOrderFile(t *testing.T, dir string, id string, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, id), []byte(content), 0644)
	require.NoError(t, err)
}

func writeResultFile(t *testing.T, outputDir string, id string, content string) {
	t.Helper()

	dir := filepath.Join(outputDir, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_result"), []byte(content), 0644))
}

func TestLoadOrders(t *testing.T) {
	dir := t.TempDir()

	writeOrderFile(t, dir, "0a1b2c3d4e5f60718293a4b5c6d7e8f9", `
user: alice
probe: fping
step: 60
pings: 5
fping:
  host: 192.168.1.5
`)

	spool, err := LoadOrders(dir)
	require.NoError(t, err)
	require.Len(t, spool.Orders, 1)

	order := spool.Orders["0a1b2c3d4e5f60718293a4b5c6d7e8f9"]
	require.NotNil(t, order)

	assert.Equal(t, "alice", order.User)
	assert.Equal(t, "fping", order.Probe)
	assert.Equal(t, 60, order.Step)
	assert.Equal(t, 5, order.Pings)
	assert.Equal(t, "192.168.1.5", order.ProbeHost)
	assert.Equal(t, "192.168.001.005:fping:60:0a1b2c3d4e5f60718293a4b5c6d7e8f9", order.SortKey)
	assert.False(t, spool.WideHosts)
	assert.Nil(t, order.Result)
}

func TestLoadOrdersMissingDir(t *testing.T) {
	_, err := LoadOrders(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Error(t, err)
}

func TestLoadOrdersSkipsCorruptFiles(t *testing.T) {
	logrus.SetLevel(logrus.InfoLevel)
	hook := test.NewGlobal()
	defer hook.Reset()

	dir := t.TempDir()
	writeOrderFile(t, dir, "aaaa11112222333344445555666677ff", "user: [unterminated\n")
	writeOrderFile(t, dir, "bbbb11112222333344445555666677ff", "user: bob\nprobe: fping\nstep: 30\npings: 3\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	require.Len(t, spool.Orders, 1)
	assert.NotNil(t, spool.Orders["bbbb11112222333344445555666677ff"])

	var warned bool
	for _, entry := range hook.Entries {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "aaaa11112222333344445555666677ff") {
			warned = true
		}
	}
	assert.True(t, warned, "the corrupt file should produce a warning naming it")
}

func TestLoadOrdersSkipsRecordsWithoutUser(t *testing.T) {
	dir := t.TempDir()
	writeOrderFile(t, dir, "cccc11112222333344445555666677ff", "probe: fping\nstep: 30\npings: 3\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	assert.Len(t, spool.Orders, 0)
}

func TestLoadOrdersSkipsNonRegularFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))
	writeOrderFile(t, dir, "dddd11112222333344445555666677ff", "user: bob\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	assert.Len(t, spool.Orders, 1)
}

func TestLoadOrdersHostless(t *testing.T) {
	dir := t.TempDir()
	writeOrderFile(t, dir, "eeee11112222333344445555666677ff", "user: bob\nprobe: fping\nstep: 300\npings: 20\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	order := spool.Orders["eeee11112222333344445555666677ff"]
	require.NotNil(t, order)
	assert.Equal(t, "", order.ProbeHost)
	assert.Equal(t, "ZZZ:fping:300:eeee11112222333344445555666677ff", order.SortKey)
}

func TestLoadOrdersWithoutProbe(t *testing.T) {
	dir := t.TempDir()
	writeOrderFile(t, dir, "ffff11112222333344445555666677ff", "user: carol\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	order := spool.Orders["ffff11112222333344445555666677ff"]
	require.NotNil(t, order)
	assert.Equal(t, "", order.Probe)
	assert.Equal(t, "ZZZ::0:ffff11112222333344445555666677ff", order.SortKey)
}

func TestLoadOrdersSetsWideHosts(t *testing.T) {
	dir := t.TempDir()
	writeOrderFile(t, dir, "abcd11112222333344445555666677ff", "user: bob\nprobe: fping6\nstep: 60\npings: 5\nfping6:\n  host: 2001:db8::1\n")

	spool, err := LoadOrders(dir)
	require.NoError(t, err)

	assert.True(t, spool.WideHosts)

	order := spool.Orders["abcd11112222333344445555666677ff"]
	require.NotNil(t, order)
	assert.Equal(t, "a.2001:0db8:0000:0001:fping6:60:abcd11112222333344445555666677ff", order.SortKey)
}
