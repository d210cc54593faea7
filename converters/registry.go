package converters

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/darianmavgo/mkfixture/converters/common"
	"github.com/darianmavgo/mkfixture/workspace"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]common.Driver)
	suffixes  = make(map[string]string) // lower-case suffix -> driver name
)

// Register makes a converter driver available by the provided name and
// associates it with the given source file suffixes (e.g. ".csv").
// If Register is called twice with the same name or suffix, or if driver is nil, it panics.
func Register(name string, driver common.Driver, exts ...string) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("converters: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("converters: Register called twice for driver " + name)
	}
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if owner, dup := suffixes[ext]; dup {
			panic("converters: suffix " + ext + " already registered by driver " + owner)
		}
		suffixes[ext] = name
	}
	drivers[name] = driver
}

// Open opens a converter by driver name and source reader.
func Open(driverName string, source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("converters: %w: unknown driver %q (forgotten import?)", common.ErrUnsupportedSource, driverName)
	}
	return driver.Open(source, config)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// DriverFor returns the driver registered for a source name's suffix.
// A compression suffix is looked through, so "orders.csv.gz" maps to the csv driver.
// When several suffixes match, the longest one wins.
func DriverFor(name string) (string, bool) {
	inner, _ := workspace.SplitCompression(name)

	driversMu.RLock()
	defer driversMu.RUnlock()
	return matchSuffix(inner, suffixes)
}

func matchSuffix(name string, table map[string]string) (string, bool) {
	lower := strings.ToLower(name)
	best, driverName := "", ""
	for ext, owner := range table {
		if !strings.HasSuffix(lower, ext) {
			continue
		}
		if len(ext) > len(best) || (len(ext) == len(best) && ext < best) {
			best, driverName = ext, owner
		}
	}
	return driverName, best != ""
}
