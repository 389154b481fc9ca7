package recalc

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
	"github.com/dispatchrepublic/trip-rate-bot/internal/parser"
)

const samplePost = "🗺 Trip ID 4821\n💰 Rate: $972.50\n💰 Per mile: $2.25/mi\n🚛 Trip: 431.63mi"

func mustExtract(t *testing.T, text string) *models.TripPost {
	t.Helper()
	post, err := parser.Extract(text)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	return post
}

func adj(sign models.Sign, amount string) *models.Adjustment {
	return &models.Adjustment{Sign: sign, Amount: decimal.RequireFromString(amount)}
}

func TestApplyAdd(t *testing.T) {
	post := mustExtract(t, samplePost)

	updated, err := Apply(post, adj(models.SignAdd, "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := updated.Rate.StringFixed(2); got != "1072.50" {
		t.Errorf("rate = %s, want 1072.50", got)
	}
	// 1072.50 / 431.63 = 2.4847... rounds to 2.48
	if got := updated.PerMile.StringFixed(2); got != "2.48" {
		t.Errorf("per mile = %s, want 2.48", got)
	}
	if !updated.Miles.Equal(post.Miles) {
		t.Error("miles must not change")
	}
	// Input must not be mutated.
	if got := post.Rate.StringFixed(2); got != "972.50" {
		t.Errorf("original rate changed to %s", got)
	}
}

func TestApplyMinusBeyondRateRejected(t *testing.T) {
	post := mustExtract(t, samplePost)

	_, err := Apply(post, adj(models.SignMinus, "1000"))
	if err == nil {
		t.Fatal("expected rejection, got nil")
	}
	kind, ok := models.KindOf(err)
	if !ok || kind != models.FailRejected {
		t.Errorf("expected rejected failure, got %v", err)
	}
}

func TestApplyZeroAdjustment(t *testing.T) {
	post := mustExtract(t, samplePost)

	for _, sign := range []models.Sign{models.SignAdd, models.SignMinus} {
		updated, err := Apply(post, adj(sign, "0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Rate.Equal(post.Rate) {
			t.Errorf("%s 0 changed the rate", sign)
		}
		want := post.Rate.DivRound(post.Miles, 2)
		if !updated.PerMile.Equal(want) {
			t.Errorf("%s 0: per mile = %s, want %s", sign, updated.PerMile, want)
		}
	}
}

// Add(x) then Add(y) lands on the same rate as a single Add(x+y).
func TestApplyMonotonicity(t *testing.T) {
	post := mustExtract(t, samplePost)

	first, err := Apply(post, adj(models.SignAdd, "40"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Apply(first, adj(models.SignAdd, "60"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	combined, err := Apply(post, adj(models.SignAdd, "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Rate.Equal(combined.Rate) {
		t.Errorf("split adds gave %s, single add gave %s", second.Rate, combined.Rate)
	}
	if !second.PerMile.Equal(combined.PerMile) {
		t.Errorf("split adds gave %s/mi, single add gave %s/mi", second.PerMile, combined.PerMile)
	}
}

func TestApplyInvalidMiles(t *testing.T) {
	post := mustExtract(t, samplePost)
	post.Miles = decimal.Zero

	_, err := Apply(post, adj(models.SignAdd, "10"))
	if err == nil {
		t.Fatal("expected rejection for zero miles")
	}
	kind, _ := models.KindOf(err)
	if kind != models.FailRejected {
		t.Errorf("expected rejected failure, got %v", err)
	}
}

func TestRewrite(t *testing.T) {
	post := mustExtract(t, samplePost)
	updated, err := Apply(post, adj(models.SignAdd, "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Rewrite(samplePost, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "🗺 Trip ID 4821\n💰 Rate: $1072.50\n💰 Per mile: $2.48/mi\n🚛 Trip: 431.63mi"
	if got != want {
		t.Errorf("rewrite mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

// Rewriting with unmodified fields reproduces the input byte for byte when
// the amounts are already in canonical two-decimal form.
func TestRewriteRoundTrip(t *testing.T) {
	post := mustExtract(t, samplePost)

	got, err := Rewrite(samplePost, post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != samplePost {
		t.Errorf("round trip changed the text:\ngot:  %q\nwant: %q", got, samplePost)
	}
}

// Decoration, extra lines and a third dollar amount all survive untouched.
func TestRewritePreservesDecoration(t *testing.T) {
	original := "✨🔥 LOAD of the day 🔥✨\n🗺 𝗧𝗿𝗶𝗽 𝗜𝗗 77\n💰 𝗥𝗮𝘁𝗲: $500.00\n💰 𝗣𝗲𝗿 𝗺𝗶𝗹𝗲: $1.25/mi\n🚛 Trip: 400mi\nDeposit was $50.00\n-- dispatch team --"
	post := mustExtract(t, original)
	updated, err := Apply(post, adj(models.SignAdd, "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Rewrite(original, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "✨🔥 LOAD of the day 🔥✨\n🗺 𝗧𝗿𝗶𝗽 𝗜𝗗 77\n💰 𝗥𝗮𝘁𝗲: $600.00\n💰 𝗣𝗲𝗿 𝗺𝗶𝗹𝗲: $1.50/mi\n🚛 Trip: 400mi\nDeposit was $50.00\n-- dispatch team --"
	if got != want {
		t.Errorf("rewrite mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestRewriteNeedsTwoAmounts(t *testing.T) {
	post := mustExtract(t, samplePost)
	_, err := Rewrite("no money here", post)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	kind, _ := models.KindOf(err)
	if kind != models.FailMalformed {
		t.Errorf("expected malformed failure, got %v", err)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"972.5", "$972.50"},
		{"2.485", "$2.49"}, // half-up
		{"2.4849", "$2.48"},
		{"0", "$0.00"},
		{"1250", "$1250.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
