package parser

import (
	"testing"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
)

func TestParseAdjustment(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantSign   models.Sign
		wantAmount string
	}{
		{"add integer", "Add 100", models.SignAdd, "100"},
		{"minus decimal", "Minus 50.25", models.SignMinus, "50.25"},
		{"lowercase", "add 7", models.SignAdd, "7"},
		{"uppercase", "MINUS 30", models.SignMinus, "30"},
		{"surrounding whitespace", "  Add 100  ", models.SignAdd, "100"},
		{"styled bold command", "𝗔𝗱𝗱 𝟭𝟬𝟬", models.SignAdd, "100"},
		{"zero amount", "Add 0", models.SignAdd, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, ok := ParseAdjustment(tt.text)
			if !ok {
				t.Fatalf("ParseAdjustment(%q) not recognized", tt.text)
			}
			if adj.Sign != tt.wantSign {
				t.Errorf("sign = %s, want %s", adj.Sign, tt.wantSign)
			}
			if adj.Amount.String() != tt.wantAmount {
				t.Errorf("amount = %s, want %s", adj.Amount, tt.wantAmount)
			}
		})
	}
}

func TestParseAdjustmentNotACommand(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"Add",
		"Add -5",
		"Add $100",
		"Add 100 please",
		"please Add 100",
		"Add 1.234",
		"Subtract 100",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			if _, ok := ParseAdjustment(text); ok {
				t.Errorf("ParseAdjustment(%q) recognized, want silent ignore", text)
			}
		})
	}
}
