package intent

import (
	"regexp"
	"strings"
)

// entityRule pairs one dimension regex with its normalizer.
// Extraction keeps at most one match per dimension (first match wins).
type entityRule struct {
	dimension string
	pattern   *regexp.Regexp
	normalize func(string) string
}

// entityRules lists one rule per dimension, in extraction order.
var entityRules = []entityRule{
	{
		dimension: "period",
		pattern:   regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|Q[1-4]|YearTotal|BegBal)\b`),
		normalize: normalizePeriod,
	},
	{
		dimension: "years",
		pattern:   regexp.MustCompile(`(?i)\b(FY\d{2}|\d{4})\b`),
		normalize: normalizeYear,
	},
	{
		dimension: "scenario",
		pattern:   regexp.MustCompile(`(?i)\b(Actual|Forecast|Budget|Plan|Working|Final)\b`),
		normalize: capitalize,
	},
	{
		// Planning account codes are 5-6 digits; a few descriptive accounts
		// are matched verbatim.
		dimension: "account",
		pattern:   regexp.MustCompile(`(?i)\b(\d{5,6}|Total[\s_]Revenue|Rooms|F&B|Net[\s_]Income|Operating[\s_]Expenses)\b`),
		normalize: func(s string) string { return strings.TrimSpace(strings.ReplaceAll(s, "_", " ")) },
	},
	{
		dimension: "entity",
		pattern:   regexp.MustCompile(`(?i)\b(E\d{3,4}|All[\s_]Entity|Total[\s_]Geography)\b`),
		normalize: func(s string) string { return strings.ToUpper(strings.ReplaceAll(s, "_", " ")) },
	},
	{
		dimension: "cost_center",
		pattern:   regexp.MustCompile(`(?i)\b(CC\d{4}|No[\s_]CostCenter)\b`),
		normalize: func(s string) string { return strings.ToUpper(strings.ReplaceAll(s, "_", "")) },
	},
	{
		dimension: "region",
		pattern:   regexp.MustCompile(`(?i)\b(R\d{3}|All[\s_]Region)\b`),
		normalize: func(s string) string { return strings.ToUpper(strings.ReplaceAll(s, "_", "")) },
	},
	{
		dimension: "version",
		pattern:   regexp.MustCompile(`(?i)\b(Final|Working|Draft|Version\d)\b`),
		normalize: capitalize,
	},
	{
		dimension: "currency",
		pattern:   regexp.MustCompile(`(?i)\b(USD|EUR|GBP|JPY|BRL|Local|Reporting)\b`),
		normalize: strings.ToUpper,
	},
	{
		dimension: "job_id",
		pattern:   regexp.MustCompile(`\b(\d{8,})\b`),
		normalize: func(s string) string { return s },
	},
}

// aliasEntry rewrites a colloquial form to its canonical member before
// entity extraction. Order matters: longer phrases must run before their
// substrings ("total revenue" before "revenue").
type aliasEntry struct {
	alias     string
	canonical string
	pattern   *regexp.Regexp
}

func newAlias(alias, canonical string) aliasEntry {
	return aliasEntry{
		alias:     alias,
		canonical: canonical,
		pattern:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`),
	}
}

var aliases = []aliasEntry{
	// Periods
	newAlias("january", "Jan"), newAlias("february", "Feb"), newAlias("march", "Mar"),
	newAlias("april", "Apr"), newAlias("may", "May"), newAlias("june", "Jun"),
	newAlias("july", "Jul"), newAlias("august", "Aug"), newAlias("september", "Sep"),
	newAlias("october", "Oct"), newAlias("november", "Nov"), newAlias("december", "Dec"),
	newAlias("q1", "Q1"), newAlias("q2", "Q2"), newAlias("q3", "Q3"), newAlias("q4", "Q4"),
	newAlias("year total", "YearTotal"), newAlias("full year", "YearTotal"), newAlias("annual", "YearTotal"),
	// Scenarios
	newAlias("actuals", "Actual"), newAlias("act", "Actual"),
	newAlias("forecast", "Forecast"), newAlias("fcst", "Forecast"),
	newAlias("plan", "Plan"), newAlias("budget", "Budget"), newAlias("bud", "Budget"),
	// Common accounts
	newAlias("net income", "Net Income"), newAlias("ni", "Net Income"),
	newAlias("total revenue", "400000"), newAlias("revenue", "400000"),
	newAlias("rooms revenue", "410000"), newAlias("rooms", "410000"),
	newAlias("f&b revenue", "420000"), newAlias("f&b", "420000"), newAlias("food and beverage", "420000"),
	newAlias("operating expenses", "600000"), newAlias("opex", "600000"),
	// Entities
	newAlias("chicago", "E501"),
	// Versions
	newAlias("final version", "Final"), newAlias("working version", "Working"),
}

// normalizeQuery lowercases and collapses whitespace.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// applyAliases rewrites aliases to canonical members. The aliased copy is
// used only for entity extraction, never for intent scoring.
func applyAliases(query string) string {
	out := query
	for _, a := range aliases {
		out = a.pattern.ReplaceAllString(out, a.canonical)
	}
	return out
}

// ExtractEntities extracts dimension entities from a query.
// Extraction is idempotent: running it on an already-normalized query yields
// identical entities.
func ExtractEntities(query string) map[string]string {
	aliased := applyAliases(normalizeQuery(query))

	entities := make(map[string]string)
	for _, rule := range entityRules {
		match := rule.pattern.FindString(aliased)
		if match == "" {
			continue
		}
		entities[rule.dimension] = rule.normalize(match)
	}
	return entities
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func normalizePeriod(s string) string {
	if len(s) == 3 {
		return capitalize(s)
	}
	// Multi-word members keep canonical casing.
	switch strings.ToLower(s) {
	case "yeartotal":
		return "YearTotal"
	case "begbal":
		return "BegBal"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func normalizeYear(s string) string {
	if len(s) == 4 && !strings.ContainsAny(s, "fF") {
		// Bare calendar year: 2025 -> FY25
		return "FY" + s[2:]
	}
	return strings.ToUpper(s)
}
