// Command journal_bench checks entry listing and sorting throughput from
// `go test -bench` output against a baseline run.
//
//	go test -run '^$' -bench 'ListEntries|SortEntries' ./internal/journal > current.txt
//	go run ./scripts/ci -baseline base.txt -current current.txt
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// requiredCases must all be present in the current run.
var requiredCases = []string{
	"BenchmarkListEntries/small",
	"BenchmarkListEntries/large",
	"BenchmarkSortEntries/large",
}

// sample is one benchmark line reduced to the two metrics the check needs.
type sample struct {
	nsPerOp      float64
	entriesPerOp float64
}

// throughput is entries handled per second.
func (s sample) throughput() float64 {
	if s.nsPerOp <= 0 {
		return 0
	}
	return s.entriesPerOp * 1e9 / s.nsPerOp
}

// dropLimit is the largest throughput drop tolerated for cases starting with
// prefix.
type dropLimit struct {
	prefix string
	maxPct float64
}

type result struct {
	name     string
	entries  float64
	baseline float64
	current  float64
	dropPct  float64
	limitPct float64
	fresh    bool
}

func (r result) ok() bool {
	return r.fresh || r.dropPct <= r.limitPct
}

func main() {
	baselinePath := flag.String("baseline", "", "benchmark output of the base revision")
	currentPath := flag.String("current", "", "benchmark output of the revision under test")
	listDrop := flag.Float64("list-max-drop", 20, "allowed throughput drop for ListEntries, in percent")
	sortDrop := flag.Float64("sort-max-drop", 30, "allowed throughput drop for SortEntries, in percent")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		exitf("both -baseline and -current are required")
	}
	if *listDrop < 0 || *sortDrop < 0 {
		exitf("drop limits must be non-negative")
	}
	limits := []dropLimit{
		{prefix: "BenchmarkListEntries/", maxPct: *listDrop},
		{prefix: "BenchmarkSortEntries/", maxPct: *sortDrop},
	}

	baseline, err := readSamples(*baselinePath)
	if err != nil {
		exitf("baseline: %v", err)
	}
	current, err := readSamples(*currentPath)
	if err != nil {
		exitf("current: %v", err)
	}
	results, err := evaluate(baseline, current, limits)
	if err != nil {
		exitf("%v", err)
	}

	writeReport(os.Stdout, results)
	if summary := os.Getenv("GITHUB_STEP_SUMMARY"); summary != "" {
		if err := appendReport(summary, results); err != nil {
			exitf("step summary: %v", err)
		}
	}
	for _, r := range results {
		if !r.ok() {
			os.Exit(1)
		}
	}
}

func readSamples(path string) (map[string]sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := parseSamples(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// parseSamples reads benchmark lines that report both ns/op and entries/op.
// Other lines are ignored.
func parseSamples(r io.Reader) (map[string]sample, error) {
	samples := map[string]sample{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || !strings.HasPrefix(fields[0], "Benchmark") {
			continue
		}
		var s sample
		for i := 2; i+1 < len(fields); i += 2 {
			value, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q", fields[0], fields[i])
			}
			switch fields[i+1] {
			case "ns/op":
				s.nsPerOp = value
			case "entries/op":
				s.entriesPerOp = value
			}
		}
		if s.nsPerOp > 0 && s.entriesPerOp > 0 {
			samples[caseName(fields[0])] = s
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("no benchmark lines with entries/op")
	}
	return samples, nil
}

// caseName drops the -GOMAXPROCS suffix go test appends to names.
func caseName(name string) string {
	i := strings.LastIndexByte(name, '-')
	if i < 0 {
		return name
	}
	if _, err := strconv.Atoi(name[i+1:]); err != nil {
		return name
	}
	return name[:i]
}

func evaluate(baseline, current map[string]sample, limits []dropLimit) ([]result, error) {
	results := make([]result, 0, len(requiredCases))
	for _, name := range requiredCases {
		curr, ok := current[name]
		if !ok {
			return nil, fmt.Errorf("current run is missing %s", name)
		}
		r := result{
			name:     name,
			entries:  curr.entriesPerOp,
			current:  curr.throughput(),
			limitPct: limitFor(name, limits),
		}
		base, ok := baseline[name]
		if !ok || base.throughput() <= 0 {
			r.fresh = true
		} else {
			r.baseline = base.throughput()
			r.dropPct = (r.baseline - r.current) / r.baseline * 100
		}
		results = append(results, r)
	}
	return results, nil
}

func limitFor(name string, limits []dropLimit) float64 {
	for _, l := range limits {
		if strings.HasPrefix(name, l.prefix) {
			return l.maxPct
		}
	}
	return 0
}

func appendReport(path string, results []result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	writeReport(f, results)
	return f.Close()
}

func writeReport(w io.Writer, results []result) {
	fmt.Fprintln(w, "### Journal throughput")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Case | Entries | Baseline | Current | Change | Allowed drop | Status |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|---|")
	for _, r := range results {
		baseline, change, status := "-", "-", "new"
		if !r.fresh {
			baseline = rate(r.baseline)
			change = fmt.Sprintf("%+.1f%%", -r.dropPct)
			status = "ok"
			if !r.ok() {
				status = "too slow"
			}
		}
		fmt.Fprintf(w, "| %s | %.0f | %s | %s | %s | %.0f%% | %s |\n",
			strings.TrimPrefix(r.name, "Benchmark"), r.entries, baseline, rate(r.current), change, r.limitPct, status)
	}
	fmt.Fprintln(w)
}

// rate formats entries per second with a metric suffix.
func rate(perSec float64) string {
	switch {
	case perSec >= 1e6:
		return fmt.Sprintf("%.2fM/s", perSec/1e6)
	case perSec >= 1e3:
		return fmt.Sprintf("%.1fk/s", perSec/1e3)
	default:
		return fmt.Sprintf("%.0f/s", perSec)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "journal_bench: "+format+"\n", args...)
	os.Exit(2)
}
