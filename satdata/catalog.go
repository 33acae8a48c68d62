package satdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/signalsfoundry/gnssmapper/internal/logging"
	"github.com/signalsfoundry/gnssmapper/model"
)

var (
	ErrSatelliteExists   = errors.New("satellite already in catalog")
	ErrSatelliteNotFound = errors.New("satellite not in catalog")
)

// record pairs a catalog entry with its initialised SGP4 propagator.
type record struct {
	entry Entry
	sat   satellite.Satellite
}

// Catalog is a thread-safe in-memory store of TLE-backed satellites keyed by
// svid. It implements the pipeline's SatelliteService.
type Catalog struct {
	mu   sync.RWMutex
	sats map[model.SVID]*record
	log  logging.Logger
}

// NewCatalog constructs an empty catalog. A nil logger is replaced with a
// no-op logger.
func NewCatalog(log logging.Logger) *Catalog {
	if log == nil {
		log = logging.Noop()
	}
	return &Catalog{
		sats: make(map[model.SVID]*record),
		log:  log,
	}
}

// Add inserts a parsed TLE entry. It returns an error if the svid is already
// present.
func (c *Catalog) Add(e Entry) error {
	if e.SVID == "" || !e.SVID.WellFormed() {
		return fmt.Errorf("entry %q has no usable svid", e.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sats[e.SVID]; exists {
		return fmt.Errorf("%w: %q", ErrSatelliteExists, e.SVID)
	}
	c.sats[e.SVID] = &record{
		entry: e,
		sat:   satellite.TLEToSat(e.Line1, e.Line2, satellite.GravityWGS72),
	}
	return nil
}

// Load parses 3-line TLE records from r and adds them all, returning how
// many were added. Duplicate svids keep the first record seen and log the
// rest.
func (c *Catalog) Load(ctx context.Context, r io.Reader) (int, error) {
	entries, err := ParseTLE(ctx, r, c.log)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, e := range entries {
		if err := c.Add(e); err != nil {
			if errors.Is(err, ErrSatelliteExists) {
				c.log.Warn(ctx, "duplicate svid in TLE data", logging.String("svid", string(e.SVID)), logging.String("name", e.Name))
				continue
			}
			return added, err
		}
		added++
	}
	c.log.Info(ctx, "loaded satellite catalog", logging.Int("satellites", added))
	return added, nil
}

// SVIDs returns the catalog's svids in sorted order.
func (c *Catalog) SVIDs() []model.SVID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	svids := maps.Keys(c.sats)
	slices.Sort(svids)
	return svids
}

// Len returns the number of satellites in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sats)
}

// Epoch returns the TLE epoch for an svid.
func (c *Catalog) Epoch(svid model.SVID) (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.sats[svid]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrSatelliteNotFound, svid)
	}
	return rec.entry.Epoch, nil
}
