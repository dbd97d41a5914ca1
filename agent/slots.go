package agent

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tripwise-project/tripwise-agent/types"
)

// Errors surfaced by direct slot answers. Each maps to a re-ask, never
// to a dropped turn.
var (
	errPastDate      = errors.New("date is in the past")
	errUnparsedDate  = errors.New("could not parse date")
	errNotPositive   = errors.New("expected a positive number")
	errNoCityInInput = errors.New("no city found in input")
)

// humanDateLayouts are the accepted free-form date shapes, tried in
// order. Yearless layouts resolve against the current year.
var humanDateLayouts = []string{
	"2006-01-02",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan",
	"2 January",
	"Jan 2",
	"January 2",
}

// yearlessLayouts marks which entries need year backfill.
var yearlessLayouts = map[string]bool{
	"2 Jan": true, "2 January": true, "Jan 2": true, "January 2": true,
}

var reISOInText = regexp.MustCompile(`20\d{2}-\d{2}-\d{2}`)

// parseHumanDate turns a free-form date answer into an ISO date string.
// A yearless date in the past rolls forward one year; an explicit past
// date is rejected.
func parseHumanDate(raw string, now time.Time) (string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return "", errUnparsedDate
	}
	// Titlecase month tokens so "10 sep" parses.
	cleaned = titleWords(cleaned)

	today := dateOnly(now)
	for _, layout := range humanDateLayouts {
		parsed, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		if yearlessLayouts[layout] {
			parsed = time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			if parsed.Before(today) {
				parsed = parsed.AddDate(1, 0, 0)
			}
		}
		if parsed.Before(today) || parsed.Equal(today) {
			return "", errPastDate
		}
		return parsed.Format("2006-01-02"), nil
	}
	return "", errUnparsedDate
}

// cityNoiseWords never survive city extraction.
var cityNoiseWords = map[string]bool{
	"starting": true, "from": true, "date": true, "travel": true,
	"trip": true, "going": true, "to": true, "please": true,
	"change": true, "destination": true, "source": true, "city": true,
	"on": true,
}

var reNonAlpha = regexp.MustCompile(`[^a-z]`)

// extractCity pulls a city name out of a noisy answer. Multi-word
// candidates are preferred when the validity check accepts them.
func extractCity(raw string, isValidCity func(string) bool) string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(raw)) {
		word = reNonAlpha.ReplaceAllString(word, "")
		if len(word) <= 2 || cityNoiseWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	if len(tokens) == 0 {
		return ""
	}

	if len(tokens) >= 2 {
		candidate := titleWords(tokens[0] + " " + tokens[1])
		if isValidCity != nil && isValidCity(candidate) {
			return candidate
		}
	}
	return titleWords(tokens[0])
}

// containsPastISODate reports whether the text mentions an explicit ISO
// date that already passed. Used as a guard before any parsing so stale
// dates never slip into state.
func containsPastISODate(text string, now time.Time) bool {
	m := reISOInText.FindString(text)
	if m == "" {
		return false
	}
	d, err := types.ParseISODate(m)
	if err != nil {
		return false
	}
	return d.Before(dateOnly(now))
}

// parsePositiveInt accepts a bare number or one embedded in a short
// answer like "3 days".
func parsePositiveInt(raw string) (int, error) {
	for _, field := range strings.Fields(raw) {
		if n, err := strconv.Atoi(field); err == nil {
			if n <= 0 {
				return 0, errNotPositive
			}
			return n, nil
		}
	}
	return 0, errNotPositive
}

// parseChoiceIndex reads a 1-based menu selection.
func parseChoiceIndex(raw string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n - 1, true
}

func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addDaysISO shifts an ISO date by a day count.
func addDaysISO(iso string, days int) (string, error) {
	d, err := types.ParseISODate(iso)
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", iso, err)
	}
	return d.AddDate(0, 0, days).Format("2006-01-02"), nil
}

// weekdayOf returns the lowercase weekday name of an ISO date.
func weekdayOf(iso string) (string, error) {
	d, err := types.ParseISODate(iso)
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", iso, err)
	}
	return strings.ToLower(d.Weekday().String()), nil
}
