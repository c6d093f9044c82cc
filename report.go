package statusman

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	orderColWidth    = 8
	stepColWidth     = 7
	pingsColWidth    = 5
	probeColWidth    = 8
	hostColWidth     = 15
	hostColWidthWide = 39
	updatedColWidth  = 8
	medianColWidth   = 8
	lossColWidth     = 5
)

// Report renders one spool of orders as a grouped text table, one section
// per user.
type Report struct {
	spool  *Spool
	styler Styler
}

func NewReport(spool *Spool, styler Styler) *Report {
	return &Report{
		spool:  spool,
		styler: styler,
	}
}

// Render writes the whole report to w. Users come in lexicographic order,
// orders within one user in sort key order.
func (r *Report) Render(w io.Writer) {
	now := time.Now().Unix()

	byUser := map[string][]*Order{}
	for _, order := range r.spool.Orders {
		byUser[order.User] = append(byUser[order.User], order)
	}

	users := make([]string, 0, len(byUser))
	for user := range byUser {
		users = append(users, user)
	}
	sort.Strings(users)

	for i, user := range users {
		if i > 0 {
			fmt.Fprintln(w)
		}

		orders := byUser[user]
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].SortKey < orders[j].SortKey
		})

		fmt.Fprintln(w, r.styler.Bold("user: "+user))
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.styler.Bold(r.headerLine()))
		fmt.Fprintln(w, r.separatorLine())

		for _, order := range orders {
			fmt.Fprintln(w, r.orderRow(order, now))
		}
	}
}

// hostWidth widens the host column for the whole report as soon as one
// order targets an IPv6 literal, so a full 39 char address still fits.
func (r *Report) hostWidth() int {
	if r.spool.WideHosts {
		return hostColWidthWide
	}

	return hostColWidth
}

func (r *Report) headerLine() string {
	cells := []string{
		padRight("order", orderColWidth),
		padRight("step", stepColWidth),
		padRight("pings", pingsColWidth),
		padRight("probe", probeColWidth),
		padRight("host", r.hostWidth()),
		padLeft("updated", updatedColWidth),
		padLeft("median", medianColWidth),
		padLeft("loss", lossColWidth),
	}

	return strings.Join(cells, " ")
}

func (r *Report) separatorLine() string {
	widths := []int{
		orderColWidth,
		stepColWidth,
		pingsColWidth,
		probeColWidth,
		r.hostWidth(),
		updatedColWidth,
		medianColWidth,
		lossColWidth,
	}

	dashes := make([]string, 0, len(widths))
	for _, width := range widths {
		dashes = append(dashes, strings.Repeat("-", width))
	}

	return strings.Join(dashes, " ")
}

func (r *Report) orderRow(order *Order, now int64) string {
	host := order.ProbeHost
	if host == "" {
		host = "-"
	}

	cells := []string{
		padRight(orderCell(order.ID), orderColWidth),
		padRight(fmt.Sprintf("%d s", order.Step), stepColWidth),
		padRight(fmt.Sprintf("%d", order.Pings), pingsColWidth),
		padRight(order.Probe, probeColWidth),
		padRight(host, r.hostWidth()),
		r.updatedCell(order, now),
		padLeft(medianCell(order.Result), medianColWidth),
		r.lossCell(order),
	}

	row := strings.Join(cells, " ")

	if annotation := probeAnnotation(order.Probe, order.ProbeSection); annotation != "" {
		row += " (" + annotation + ")"
	}

	return row
}

// orderCell truncates the order id to its first 8 chars, which is plenty to
// tell orders apart by eye and keeps the column narrow.
func orderCell(id string) string {
	if len(id) > orderColWidth {
		return id[:orderColWidth]
	}

	return id
}

func (r *Report) updatedCell(order *Order, now int64) string {
	if order.Result == nil {
		return padLeft("-", updatedColWidth)
	}

	elapsed := now - order.Result.Updated
	cell := padLeft(formatAge(elapsed), updatedColWidth)

	// The order promised a sample every Step seconds. Older than that means
	// the measurement subsystem fell behind.
	if elapsed > int64(order.Step) {
		return r.styler.Red(cell)
	}

	return cell
}

func formatAge(seconds int64) string {
	switch {
	case seconds < 120:
		return fmt.Sprintf("%d s", seconds)
	case seconds < 7200:
		return fmt.Sprintf("%d min", seconds/60)
	case seconds < 172800:
		return fmt.Sprintf("%d h", seconds/3600)
	default:
		return fmt.Sprintf("%d d", seconds/86400)
	}
}

func medianCell(result *Result) string {
	if result == nil || result.Median == nil {
		return "-"
	}

	return fmt.Sprintf("%d ms", int(math.Round(*result.Median*1000)))
}

func (r *Report) lossCell(order *Order) string {
	if order.Result == nil || order.Pings <= 0 {
		return padLeft("-", lossColWidth)
	}

	pct := int(math.Round(float64(order.Result.Loss*100) / float64(order.Pings)))
	cell := padLeft(fmt.Sprintf("%d%%", pct), lossColWidth)

	return r.lossStyle(order.Result.Loss, order.Pings)(cell)
}

// lossStyle picks the color for a loss count. One lost probe counts as
// noise only when more than two probes were sent.
func (r *Report) lossStyle(loss int, pings int) func(string) string {
	switch {
	case loss == 0 || (pings > 2 && loss == 1):
		return r.styler.Green
	case loss == pings:
		return r.styler.Red
	default:
		return r.styler.Yellow
	}
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

func padLeft(s string, width int) string {
	return fmt.Sprintf("%*s", width, s)
}
