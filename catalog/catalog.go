// Package catalog indexes the static route network: which cities flights
// depart from, which they arrive at, and which pairs are connected.
// The index is immutable after construction.
package catalog

import (
	"sort"
	"strings"

	"github.com/tripwise-project/tripwise-agent/dataset"
)

// RouteCatalog answers city and route validity and suggestion queries.
// All lookups normalize their inputs first.
type RouteCatalog struct {
	sources      map[string]struct{}
	destinations map[string]struct{}
	fromTo       map[string]map[string]struct{}
	toFrom       map[string]map[string]struct{}
}

// New builds the catalog from the flight dataset.
func New(flights []dataset.FlightRecord) *RouteCatalog {
	c := &RouteCatalog{
		sources:      make(map[string]struct{}),
		destinations: make(map[string]struct{}),
		fromTo:       make(map[string]map[string]struct{}),
		toFrom:       make(map[string]map[string]struct{}),
	}
	for _, f := range flights {
		src := Normalize(f.From)
		dst := Normalize(f.To)
		if src == "" || dst == "" {
			continue
		}
		c.sources[src] = struct{}{}
		c.destinations[dst] = struct{}{}
		if c.fromTo[src] == nil {
			c.fromTo[src] = make(map[string]struct{})
		}
		c.fromTo[src][dst] = struct{}{}
		if c.toFrom[dst] == nil {
			c.toFrom[dst] = make(map[string]struct{})
		}
		c.toFrom[dst][src] = struct{}{}
	}
	return c
}

// Normalize trims whitespace and canonicalizes a city name to title case.
func Normalize(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(city))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsValidSource reports whether any flight departs from the city.
func (c *RouteCatalog) IsValidSource(city string) bool {
	_, ok := c.sources[Normalize(city)]
	return ok
}

// IsValidDestination reports whether any flight arrives at the city.
func (c *RouteCatalog) IsValidDestination(city string) bool {
	_, ok := c.destinations[Normalize(city)]
	return ok
}

// IsValidRoute reports whether a direct route connects the pair.
func (c *RouteCatalog) IsValidRoute(source, destination string) bool {
	_, ok := c.fromTo[Normalize(source)][Normalize(destination)]
	return ok
}

// IsValidCity reports whether the city appears as either a source or a
// destination.
func (c *RouteCatalog) IsValidCity(city string) bool {
	n := Normalize(city)
	if n == "" {
		return false
	}
	if _, ok := c.sources[n]; ok {
		return true
	}
	_, ok := c.destinations[n]
	return ok
}

// DestinationsFrom lists the cities reachable from a source, sorted.
func (c *RouteCatalog) DestinationsFrom(city string) []string {
	return sortedKeys(c.fromTo[Normalize(city)])
}

// SourcesTo lists the cities with service into a destination, sorted.
func (c *RouteCatalog) SourcesTo(city string) []string {
	return sortedKeys(c.toFrom[Normalize(city)])
}

// AllSources lists every departure city, sorted.
func (c *RouteCatalog) AllSources() []string {
	return sortedKeys(c.sources)
}

// AllDestinations lists every arrival city, sorted.
func (c *RouteCatalog) AllDestinations() []string {
	return sortedKeys(c.destinations)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
