package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
	"github.com/dispatchrepublic/trip-rate-bot/internal/textfold"
)

// An adjustment command is a whole message of the form "Add 100" or
// "Minus 50.25", any case. The amount is non-negative; direction comes from
// the verb only.
var adjustmentPattern = regexp.MustCompile(`(?i)^(add|minus)\s+([0-9]+(?:\.[0-9]{1,2})?)$`)

// ParseAdjustment parses an "Add N" / "Minus N" reply. ok is false for
// anything that is not a command; that case is silent, not an error.
func ParseAdjustment(text string) (*models.Adjustment, bool) {
	folded := strings.TrimSpace(textfold.Fold(text))
	m := adjustmentPattern.FindStringSubmatch(folded)
	if m == nil {
		return nil, false
	}

	amount, err := decimal.NewFromString(m[2])
	if err != nil {
		return nil, false
	}

	sign := models.SignAdd
	if strings.EqualFold(m[1], "minus") {
		sign = models.SignMinus
	}
	return &models.Adjustment{Sign: sign, Amount: amount}, true
}
