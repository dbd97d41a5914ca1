// Package intent turns free-text utterances into sparse slot extractions.
// A deterministic rule pass runs first and is authoritative; an LLM
// fallback fills gaps only, and nothing here ever overwrites state.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/catalog"
	"github.com/tripwise-project/tripwise-agent/types"
)

// genericPhrases are filler words that must never be accepted as a
// location value, from either extractor.
var genericPhrases = map[string]struct{}{
	"plan a trip":   {},
	"plan trip":     {},
	"trip":          {},
	"travel":        {},
	"vacation":      {},
	"holiday":       {},
	"tour":          {},
	"family trip":   {},
	"business trip": {},
}

// IsGenericPhrase reports whether the value is denylisted as a location.
func IsGenericPhrase(s string) bool {
	_, ok := genericPhrases[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// captureNoise are filler tokens stripped from regex-captured city
// phrases. The capture groups are greedy over letters and spaces, so a
// phrase like "plan a trip to goa" or "delhi for" needs the surrounding
// words removed before it can become a slot value.
var captureNoise = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "i": {}, "we": {}, "me": {}, "my": {},
	"to": {}, "for": {}, "with": {}, "on": {}, "in": {}, "at": {}, "and": {},
	"plan": {}, "book": {}, "take": {}, "visit": {}, "go": {}, "going": {},
	"want": {}, "need": {}, "fly": {}, "flight": {}, "flights": {},
	"trip": {}, "travel": {}, "vacation": {}, "holiday": {}, "tour": {},
	"starting": {}, "please": {},
}

// cityFromCapture strips filler tokens from a captured phrase and
// normalizes what survives. ok is false when nothing usable remains.
func cityFromCapture(raw string) (string, bool) {
	if IsGenericPhrase(raw) {
		return "", false
	}
	var kept []string
	for _, w := range strings.Fields(strings.ToLower(raw)) {
		if _, noise := captureNoise[w]; noise {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return "", false
	}
	city := catalog.Normalize(strings.Join(kept, " "))
	if IsGenericPhrase(city) {
		return "", false
	}
	return city, true
}

var (
	reFromTo    = regexp.MustCompile(`from\s+([a-z\s]+?)\s+to\s+([a-z\s]+)`)
	reXFromY    = regexp.MustCompile(`([a-z\s]+?)\s+from\s+([a-z\s]+)`)
	reToDest    = regexp.MustCompile(`\bto\s+([a-z\s]{2,20})$`)
	reTravelers = regexp.MustCompile(`(\d+)\s*(people|person|persons|travellers|travelers|pax)`)
	reDays      = regexp.MustCompile(`for\s+(\d+)\s*day`)
	reISODate   = regexp.MustCompile(`(20\d{2}-\d{2}-\d{2})`)
)

// rule is one independent predicate+action pair. Rules in the same group
// compete: once an exclusive rule fires, later rules in that group are
// skipped for the utterance. No rule overwrites a field already set
// within the same pass.
type rule struct {
	name      string
	group     string
	exclusive bool
	apply     func(text string, now time.Time, out *types.Extraction) bool
}

var rules = []rule{
	{
		// "from X to Y" carries both endpoints and wins the route group.
		name: "route_explicit", group: "route", exclusive: true,
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			m := reFromTo.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			src, okSrc := cityFromCapture(m[1])
			dst, okDst := cityFromCapture(m[2])
			if !okSrc && !okDst {
				return false
			}
			if okSrc {
				out.Source = types.StrPtr(src)
			}
			if okDst {
				out.Destination = types.StrPtr(dst)
			}
			return true
		},
	},
	{
		// "<phrase> from <city>": the city after "from" is a solid
		// source signal; the leading phrase is a destination only when
		// it is not a filler word.
		name: "route_weak", group: "route",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			m := reXFromY.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			if src, ok := cityFromCapture(m[2]); ok && out.Source == nil {
				out.Source = types.StrPtr(src)
			}
			if dst, ok := cityFromCapture(m[1]); ok && out.Destination == nil {
				out.Destination = types.StrPtr(dst)
			}
			return true
		},
	},
	{
		// Trailing "to <city>" with no "from" anywhere.
		name: "destination_only", group: "route",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if strings.Contains(text, "from") {
				return false
			}
			m := reToDest.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			candidate, ok := cityFromCapture(m[1])
			if !ok {
				return false
			}
			if out.Destination == nil {
				out.Destination = types.StrPtr(candidate)
			}
			return true
		},
	},
	{
		// One-way phrases are checked before round-trip ones so that
		// "no return" does not match the bare "return" keyword.
		name: "trip_type",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if out.TripType != nil {
				return false
			}
			for _, k := range []string{"one way", "one-way", "single trip", "no return"} {
				if strings.Contains(text, k) {
					out.TripType = types.StrPtr(types.TripOneWay)
					return true
				}
			}
			for _, k := range []string{"round trip", "roundtrip", "return trip", "two way", "2 way", "both ways", "return"} {
				if strings.Contains(text, k) {
					out.TripType = types.StrPtr(types.TripRoundTrip)
					return true
				}
			}
			return false
		},
	},
	{
		name: "travelers_phrase",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if out.Travelers != nil {
				return false
			}
			if strings.Contains(text, "me and my wife") || strings.Contains(text, "me and my husband") {
				out.Travelers = types.IntPtr(2)
				return true
			}
			return false
		},
	},
	{
		name: "travelers_count",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if out.Travelers != nil {
				return false
			}
			m := reTravelers.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				out.Travelers = types.IntPtr(n)
				return true
			}
			return false
		},
	},
	{
		name: "days_count",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if out.Days != nil {
				return false
			}
			if m := reDays.FindStringSubmatch(text); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					out.Days = types.IntPtr(n)
					return true
				}
			}
			if strings.Contains(text, "one week") {
				out.Days = types.IntPtr(7)
				return true
			}
			return false
		},
	},
	{
		// An ISO date token counts only when it is strictly in the
		// future; past dates are dropped here and guarded elsewhere.
		name: "travel_date_iso",
		apply: func(text string, now time.Time, out *types.Extraction) bool {
			if out.TravelDate != nil {
				return false
			}
			m := reISODate.FindStringSubmatch(text)
			if m == nil {
				return false
			}
			d, err := types.ParseISODate(m[1])
			if err != nil {
				return false
			}
			if !d.After(dateOnly(now)) {
				return false
			}
			out.TravelDate = types.StrPtr(m[1])
			return true
		},
	},
	{
		name: "budget_tier",
		apply: func(text string, _ time.Time, out *types.Extraction) bool {
			if out.Budget != nil {
				return false
			}
			switch {
			case containsAny(text, "budget", "budget friendly", "low cost", "cheap"):
				out.Budget = types.StrPtr(types.BudgetTierBudget)
			case strings.Contains(text, "luxury"):
				out.Budget = types.StrPtr(types.BudgetTierLuxury)
			case strings.Contains(text, "mid"):
				out.Budget = types.StrPtr(types.BudgetTierMidRange)
			default:
				return false
			}
			return true
		},
	},
}

// Extract runs the ordered rule list over one utterance.
func Extract(utterance string, now time.Time) types.Extraction {
	text := strings.ToLower(strings.TrimSpace(utterance))
	var out types.Extraction
	won := make(map[string]bool)

	for _, r := range rules {
		if r.group != "" && won[r.group] {
			continue
		}
		if r.apply(text, now, &out) && r.exclusive {
			won[r.group] = true
		}
	}
	return out
}

func containsAny(text string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// dateOnly truncates a timestamp to midnight so date comparisons are
// calendar comparisons.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
