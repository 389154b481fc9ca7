package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
	"github.com/dispatchrepublic/trip-rate-bot/internal/textfold"
)

// Dollar amounts as they appear in posts: optional space after the $,
// thousands separators, up to four decimals.
var dollarPattern = regexp.MustCompile(`\$\s*([0-9][\d,]*(?:\.[0-9]{1,4})?)`)

// Miles come from the truck line ("🚛 ... 431.63mi") or, after folding
// styled text, a plain "Trip: 431.63mi" line.
var (
	milesTruckPattern = regexp.MustCompile(`(?i)🚛[\s\S]*?([0-9][\d,]*(?:\.[0-9]{1,3})?)\s*mi\b`)
	milesTripPattern  = regexp.MustCompile(`(?im)\btrip\s*:\s*([0-9][\d,]*(?:\.[0-9]{1,3})?)\s*mi\b`)
)

// Extract pulls the rate, per-mile rate and miles out of a trip post.
//
// The first $ amount in document order is the rate and the second is the
// per-mile figure. This is positional on purpose: real posts label these
// lines inconsistently and often in styled unicode, so position is
// authoritative. Matching on labels instead would change behavior on posts
// that are handled correctly today.
func Extract(text string) (*models.TripPost, error) {
	matches := dollarPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return nil, models.Malformed("could not find two dollar amounts (Rate and Per mile)")
	}

	rate, err := parseAmount(text[matches[0][2]:matches[0][3]])
	if err != nil {
		return nil, models.Malformed("could not read the rate amount")
	}
	perMile, err := parseAmount(text[matches[1][2]:matches[1][3]])
	if err != nil {
		return nil, models.Malformed("could not read the per-mile amount")
	}
	if !hasMileSuffix(text[matches[1][1]:]) {
		return nil, models.Malformed("the second dollar amount must be a per-mile figure like $2.25/mi")
	}

	miles, ok := extractMiles(text)
	if !ok {
		return nil, models.Malformed("could not find the trip miles (a line like '🚛 Trip: 431.63mi')")
	}

	return &models.TripPost{
		Rate:     rate,
		PerMile:  perMile,
		Miles:    miles,
		RawLines: strings.Split(text, "\n"),
	}, nil
}

func extractMiles(text string) (decimal.Decimal, bool) {
	m := milesTruckPattern.FindStringSubmatch(text)
	if m == nil {
		m = milesTripPattern.FindStringSubmatch(textfold.Fold(text))
	}
	if m == nil {
		return decimal.Decimal{}, false
	}
	d, err := parseAmount(m[1])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// hasMileSuffix checks that a matched amount is immediately followed by a
// distance unit, allowing only whitespace in between.
func hasMileSuffix(rest string) bool {
	rest = strings.TrimLeft(textfold.Fold(rest), " \t")
	return strings.HasPrefix(strings.ToLower(rest), "/mi")
}

// parseAmount converts "1,234.56" to an exact decimal. Money never touches
// binary floating point.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}
