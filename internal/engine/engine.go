// Package engine routes one inbound chat message to the replies it should
// produce. It is the pure core: no chat sessions, no I/O, no state between
// calls, so concurrent invocations need no locking.
package engine

import (
	"strings"
	"time"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
	"github.com/dispatchrepublic/trip-rate-bot/internal/parser"
	"github.com/dispatchrepublic/trip-rate-bot/internal/recalc"
	"github.com/dispatchrepublic/trip-rate-bot/internal/schedule"
)

// Inbound is what the transport shell hands the core: the message text and,
// when the message is a reply, the replied-to text verbatim. The core never
// fetches or stores chat state itself.
type Inbound struct {
	Text        string
	ReplyToText string
}

// Result carries the replies to send and, for scheduling requests, the
// reminder the shell should arm.
type Result struct {
	Replies  []models.Reply
	Reminder *schedule.Reminder
}

// Handle classifies one message and produces the replies for it.
//
// Routing order: load alerts, then PU scheduling requests, then trip posts,
// then adjustment commands. Anything else is silently ignored.
func Handle(in Inbound, now time.Time) Result {
	text := in.Text
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	if parser.IsLoadAlert(text) {
		return Result{Replies: []models.Reply{{Text: parser.LoadAlertPrompt, Threaded: true}}}
	}

	if rem, replies, handled := schedule.ParseRequest(text, now); handled {
		return Result{Replies: replies, Reminder: rem}
	}

	if parser.IsTripPost(text) {
		prompts := parser.GuidancePrompts()
		return Result{Replies: []models.Reply{
			{Text: prompts[0], Threaded: true},
			{Text: prompts[1], Threaded: true},
		}}
	}

	if adj, ok := parser.ParseAdjustment(text); ok {
		return Result{Replies: recalculate(in.ReplyToText, adj)}
	}

	return Result{}
}

func recalculate(original string, adj *models.Adjustment) []models.Reply {
	if strings.TrimSpace(original) == "" {
		return []models.Reply{{
			Text: "❗ Could not find the Rate and Miles. Reply to a trip post with lines like " +
				"'💰 Rate: $123.45' and '🚛 Trip: 431.63mi'.",
			Threaded: true,
		}}
	}

	post, err := parser.Extract(original)
	if err != nil {
		return diagnostic(err)
	}
	updated, err := recalc.Apply(post, adj)
	if err != nil {
		return diagnostic(err)
	}
	out, err := recalc.Rewrite(original, updated)
	if err != nil {
		return diagnostic(err)
	}
	return []models.Reply{{Text: out, Threaded: true}}
}

// Every failure maps 1:1 to a chat-visible message; nothing is dropped
// silently once the message has been classified.
func diagnostic(err error) []models.Reply {
	return []models.Reply{{Text: "❗ " + err.Error(), Threaded: true}}
}
