// Package recalc applies Add/Minus adjustments to a parsed trip post and
// rewrites the original message text with the corrected money figures.
package recalc

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
)

// Money substrings to rewrite, the same shape the extractor matches.
var moneyPattern = regexp.MustCompile(`\$\s*[0-9][\d,]*(?:\.[0-9]{1,4})?`)

// Apply returns a copy of post with the adjustment applied to the rate and
// the per-mile figure recomputed from the unchanged miles.
//
// The rate is kept exact; rounding to two places happens only when the
// result is rendered as display text. The per-mile figure is rounded
// half-up at two places, the standard currency convention. Decimal.DivRound
// rounds half away from zero, which is identical to half-up here because a
// negative rate is rejected before any division.
func Apply(post *models.TripPost, adj *models.Adjustment) (*models.TripPost, error) {
	newRate := post.Rate.Add(adj.Delta())
	if newRate.IsNegative() {
		return nil, models.Rejected("the adjustment is larger than the rate; the result would be negative")
	}
	if !post.Miles.IsPositive() {
		return nil, models.Rejected("trip miles must be greater than zero")
	}

	out := *post
	out.Rate = newRate
	out.PerMile = newRate.DivRound(post.Miles, 2)
	return &out, nil
}

// Rewrite re-serializes the original post with only the two money substrings
// replaced: the first $ amount becomes the rate and the second the per-mile
// figure. Every other byte (emoji, labels, line order, the miles line, the
// /mi suffix) is preserved, so arbitrary user decoration survives
// recalculation untouched.
func Rewrite(original string, post *models.TripPost) (string, error) {
	locs := moneyPattern.FindAllStringIndex(original, -1)
	if len(locs) < 2 {
		return "", models.Malformed("could not find two dollar amounts to rewrite")
	}

	var b strings.Builder
	b.Grow(len(original))
	b.WriteString(original[:locs[0][0]])
	b.WriteString(FormatMoney(post.Rate))
	b.WriteString(original[locs[0][1]:locs[1][0]])
	b.WriteString(FormatMoney(post.PerMile))
	b.WriteString(original[locs[1][1]:])
	return b.String(), nil
}

// FormatMoney renders a dollar amount with fixed two decimals, rounding
// half-up when the value carries more precision.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
