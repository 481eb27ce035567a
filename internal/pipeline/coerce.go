// Package pipeline implements the CSV normalization and metrics-aggregation
// core: coercion, field mapping, normalization, filtering, aggregation,
// grouping and time-series bucketing. Everything here is a pure function of
// its inputs.
package pipeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numCleaner strips grouping commas and the currency glyphs seen in the
// exports this tool ingests.
var numCleaner = strings.NewReplacer(",", "", "₹", "", "$", "", "€", "", "£", "")

// ParseNumber coerces a raw cell to a float. Empty or unparsable input yields
// 0, never an error; missing and zero are deliberately indistinguishable.
// Negative values pass through uncapped.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(numCleaner.Replace(raw))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

var (
	dmyDashRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dmySlashRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	ymdRe      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// fallbackLayouts are tried in order when none of the regex branches matches.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate coerces a raw cell to a canonical zero-padded YYYY-MM-DD string.
// Day-first formats take priority: the typical export locale writes
// 29-01-2025 and 29/01/2025. ISO-like input is detected unambiguously by its
// leading 4-digit year, so the branches never misroute each other. An invalid
// calendar date (month 13, day 32) reports !ok.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if m := dmyDashRe.FindStringSubmatch(s); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := dmySlashRe.FindStringSubmatch(s); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := ymdRe.FindStringSubmatch(s); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// calendarDate validates year/month/day strictly. time.Date would normalize
// month 13 into January of the next year; rejecting round-trip mismatches
// keeps that from slipping through.
func calendarDate(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
