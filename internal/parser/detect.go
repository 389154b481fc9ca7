package parser

import (
	"strings"

	"github.com/dispatchrepublic/trip-rate-bot/internal/textfold"
)

// The fixed prompts the bot sends. These are content, not configuration;
// dispatch teams rely on the exact wording and mentions.
const (
	// GuidancePrompt1 is the first reply to a detected trip post.
	GuidancePrompt1 = "Please review all posted trucks—the driver is already covered. If you see a post for a covered truck, remove it.\n\n" +
		"It only takes a few seconds—let’s check.\n\n" +
		"@dispatchrepublic  @Aziz_157 @d1spa1ch @d1spa1ch_team"

	// GuidancePrompt2 is the second reply, sent after GuidancePrompt1.
	GuidancePrompt2 = "Update team !\n\n" +
		"Please ask the dispatch when you need to send the load to the driver.\n" +
		"Assign Driver and Tractor.\n" +
		"If there is RSRV Note that on google sheets and send it to RSRV Group.\n" +
		"@usmon_offc @Alex_W911 @willliam_anderson @S1eve_21."

	// LoadAlertPrompt answers "New Load Alert" broadcasts.
	LoadAlertPrompt = "Please check all post trucks, the driver was covered! It takes just few seconds, let's do!"
)

// IsTripPost reports whether the text announces a trip: it carries a
// "Trip ID" marker (any case, styled unicode tolerated) or the 🗺 emoji.
func IsTripPost(text string) bool {
	folded := strings.ToLower(textfold.Fold(text))
	return strings.Contains(folded, "trip id") || strings.Contains(text, "🗺")
}

// IsLoadAlert reports whether the text is a load-alert broadcast.
func IsLoadAlert(text string) bool {
	return strings.Contains(strings.ToUpper(textfold.Fold(text)), "NEW LOAD ALERT")
}

// GuidancePrompts returns the two trip-post replies in send order.
func GuidancePrompts() [2]string {
	return [2]string{GuidancePrompt1, GuidancePrompt2}
}
