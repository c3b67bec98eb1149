// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
)

// Benchmark is one benchmark result line.
type Benchmark struct {
	// Name is the benchmark name without the "Benchmark" prefix,
	// sub-benchmark configuration, or GOMAXPROCS suffix.
	Name string

	// Iterations is the number of times the benchmark ran.
	Iterations int

	// Config maps configuration keys to their raw values. It
	// includes the file's configuration block in effect at this
	// line, overridden by keys from the benchmark name.
	Config map[string]string

	// Result maps units to measured values.
	Result map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// ParseBench parses a Go benchmark results file. Lines that are
// neither configuration lines nor benchmark lines are ignored.
func ParseBench(r io.Reader) ([]*Benchmark, error) {
	var bs []*Benchmark
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if b := parseBenchLine(line, config); b != nil {
				bs = append(bs, b)
			}
		}
	}
	return bs, scanner.Err()
}

func parseBenchLine(line string, block map[string]string) *Benchmark {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return nil
	}

	b := &Benchmark{
		Iterations: n,
		Config:     make(map[string]string, len(block)+1),
		Result:     make(map[string]float64),
	}
	for k, v := range block {
		b.Config[k] = v
	}

	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			b.Config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	b.Name = parts[0]
	for _, part := range parts[1:] {
		// Both "key:value" and "key=value" name sub-benchmark
		// configuration.
		if i := strings.IndexAny(part, ":="); i > 0 {
			b.Config[part[:i]] = part[i+1:]
		} else {
			b.Name += "/" + part
		}
	}
	if _, ok := b.Config["gomaxprocs"]; !ok {
		b.Config["gomaxprocs"] = "1"
	}

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		b.Result[f[i+1]] = val
	}
	return b
}

// ReadBench reads a Go benchmark results file from r into a Frame.
func ReadBench(r io.Reader) (frame.Frame, error) {
	bs, err := ParseBench(r)
	if err != nil {
		return frame.Frame{}, err
	}
	return BenchFrame(bs), nil
}

// BenchFrame returns a Frame with one row per benchmark. It has a
// "name" column, an "iterations" column, one column per configuration
// key in key order, then one []float64 column per result unit in unit
// order. Dashes in keys and units become spaces.
//
// Configuration values are typed by the most specific parser that
// accepts every value of a key: []int, then []float64 (which also
// covers integer keys missing from some benchmarks, as NaN), then
// []time.Duration. Anything else is a []string column in which
// missing values are "".
func BenchFrame(bs []*Benchmark) frame.Frame {
	nan := math.NaN()
	names := make([]string, len(bs))
	iters := make([]int, len(bs))
	configs, results := map[string][]string{}, map[string][]float64{}
	present := map[string][]bool{}
	for i, b := range bs {
		names[i], iters[i] = b.Name, b.Iterations
		for k, v := range b.Config {
			seq, ok := configs[k]
			if !ok {
				seq = make([]string, len(bs))
				configs[k] = seq
				present[k] = make([]bool, len(bs))
			}
			seq[i] = v
			present[k][i] = true
		}
		for k, v := range b.Result {
			seq, ok := results[k]
			if !ok {
				seq = make([]float64, len(bs))
				for j := range seq {
					seq[j] = nan
				}
				results[k] = seq
			}
			seq[i] = v
		}
	}

	tab := new(table.Builder).Add("name", names).Add("iterations", iters)
	keys := make([]string, 0, len(configs))
	for k := range configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		tab.Add(niceKey(key), parseConfig(configs[key], present[key]))
	}

	keys = make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		tab.Add(niceKey(key), results[key])
	}
	return frame.New(tab.Done())
}

func niceKey(key string) string {
	return strings.Replace(key, "-", " ", -1)
}

// parseConfig converts the raw values of one configuration key into
// the most specific column type that holds all of them.
func parseConfig(raw []string, present []bool) table.Slice {
	complete := true
	for _, p := range present {
		complete = complete && p
	}

	if complete {
		ints := make([]int, len(raw))
		ok := true
		for i, s := range raw {
			v, err := strconv.Atoi(s)
			if err != nil {
				ok = false
				break
			}
			ints[i] = v
		}
		if ok {
			return ints
		}
	}

	floats := make([]float64, len(raw))
	ok := true
	for i, s := range raw {
		if !present[i] {
			floats[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ok = false
			break
		}
		floats[i] = v
	}
	if ok {
		return floats
	}

	if complete {
		durs := make([]time.Duration, len(raw))
		ok := true
		for i, s := range raw {
			v, err := time.ParseDuration(s)
			if err != nil {
				ok = false
				break
			}
			durs[i] = v
		}
		if ok {
			return durs
		}
	}

	return raw
}
