// Package satdata provides the satellite-data collaborator for the
// observation pipeline: a TLE-backed catalog that names and locates
// satellites at GPS instants using SGP4 propagation.
package satdata

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/gnssmapper/internal/logging"
	"github.com/signalsfoundry/gnssmapper/model"
)

// Entry is one parsed 3-line TLE record with its derived svid.
type Entry struct {
	Name  string
	SVID  model.SVID
	Epoch time.Time
	Line1 string
	Line2 string
}

var prnPattern = regexp.MustCompile(`\(PRN ([A-Z]?) ?(\d+)\)`)

// deriveSVID maps a TLE name line to an svid. A name that already is an svid
// ("G05") is used directly; otherwise a "(PRN nn)" suffix yields a GPS svid
// and "(PRN Xnn)" an svid in constellation X. Names with neither shape are
// not locatable and return "".
func deriveSVID(name string) model.SVID {
	name = strings.TrimSpace(name)
	if s := model.SVID(name); s.WellFormed() {
		return s
	}
	m := prnPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	letter := m[1]
	if letter == "" {
		letter = "G"
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 || n > 99 {
		return ""
	}
	return model.SVID(fmt.Sprintf("%s%02d", letter, n))
}

// ParseTLE reads 3-line NORAD TLE records from r. Malformed records are
// skipped with a warning; records whose name cannot be mapped to an svid are
// skipped too, since the catalog is keyed by svid.
func ParseTLE(ctx context.Context, r io.Reader, log logging.Logger) ([]Entry, error) {
	if log == nil {
		log = logging.Noop()
	}

	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	var entries []Entry
	for i := 0; i+2 < len(lines); {
		name := strings.TrimSpace(lines[i])
		line1 := lines[i+1]
		line2 := lines[i+2]

		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			log.Warn(ctx, "skipping malformed TLE record", logging.Int("line_index", i), logging.String("name", name))
			i++
			continue
		}
		if len(line1) < 32 {
			log.Warn(ctx, "skipping TLE record with short line 1", logging.String("name", name))
			i += 3
			continue
		}

		svid := deriveSVID(name)
		if svid == "" {
			log.Warn(ctx, "skipping TLE record with no derivable svid", logging.String("name", name))
			i += 3
			continue
		}

		epoch, err := parseEpoch(strings.TrimSpace(line1[18:32]))
		if err != nil {
			log.Warn(ctx, "skipping TLE record with invalid epoch", logging.String("name", name), logging.String("error", err.Error()))
			i += 3
			continue
		}

		entries = append(entries, Entry{
			Name:  name,
			SVID:  svid,
			Epoch: epoch,
			Line1: line1,
			Line2: line2,
		})
		i += 3
	}
	return entries, nil
}

// parseEpoch converts a TLE epoch in YYDDD.DDDDDDDD form to a UTC time.
// Years 00-56 map to the 2000s, 57-99 to the 1900s.
func parseEpoch(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch string too short: %q", s)
	}
	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch year %q: %w", s[:2], err)
	}
	if year < 57 {
		year += 2000
	} else {
		year += 1900
	}
	days, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch day %q: %w", s[2:], err)
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((days - 1) * 24 * float64(time.Hour))), nil
}
