// Package bot is the Telegram transport shell. It owns the chat session,
// polling and delivery; all message understanding lives in the engine.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/dispatchrepublic/trip-rate-bot/internal/engine"
	"github.com/dispatchrepublic/trip-rate-bot/internal/parser"
	"github.com/dispatchrepublic/trip-rate-bot/internal/schedule"
)

const startHelp = "👋 TripBot is alive. Add me to your group and disable privacy mode in BotFather so I can read messages.\n\n" +
	"• Reply 'Add 100' or 'Minus 100' to a Trip message to auto-recalculate Rate and $/mi.\n" +
	"• When someone posts a Trip ID, I auto-reply with the two guidance messages.\n" +
	"• Post like:\n" +
	"  PU: 5 Sep, 15:40 PDT\n" +
	"  1h 5m\n" +
	"  → I will schedule a reply at PU − offset − 10 minutes."

// Options configure the shell.
type Options struct {
	// AdminOnly restricts handling to messages from chat creators and
	// administrators.
	AdminOnly bool
}

// Bot polls Telegram and routes each message through the engine.
type Bot struct {
	api       *tgbotapi.BotAPI
	log       *zap.Logger
	sched     *schedule.Scheduler
	adminOnly bool

	mu sync.Mutex
	// Most recent trip post per chat, so a bare "Add 100" that is not a
	// reply still has something to work on. In-memory only.
	lastTrip map[int64]string
}

// New authenticates against the Bot API.
func New(token string, sched *schedule.Scheduler, log *zap.Logger, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	return &Bot{
		api:       api,
		log:       log,
		sched:     sched,
		adminOnly: opts.AdminOnly,
		lastTrip:  make(map[int64]string),
	}, nil
}

// Run polls for updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot connected", zap.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handle(update)
		}
	}
}

func (b *Bot) handle(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.send(msg.Chat.ID, startHelp, 0)
		}
		return
	}

	if b.adminOnly && !b.isAdmin(msg.Chat.ID, msg.From) {
		return
	}

	in := engine.Inbound{Text: text}
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.Text != "" {
		in.ReplyToText = msg.ReplyToMessage.Text
	} else {
		b.mu.Lock()
		in.ReplyToText = b.lastTrip[msg.Chat.ID]
		b.mu.Unlock()
	}

	if parser.IsTripPost(text) {
		b.mu.Lock()
		b.lastTrip[msg.Chat.ID] = text
		b.mu.Unlock()
	}

	res := engine.Handle(in, time.Now())
	for _, r := range res.Replies {
		replyTo := 0
		if r.Threaded {
			replyTo = msg.MessageID
		}
		b.send(msg.Chat.ID, r.Text, replyTo)
	}

	if res.Reminder != nil {
		chatID, messageID := msg.Chat.ID, msg.MessageID
		remText := res.Reminder.Text
		key := fmt.Sprintf("%d_%d", chatID, messageID)
		b.sched.Arm(key, res.Reminder.SendAt, func() {
			b.send(chatID, remText, messageID)
		})
	}
}

func (b *Bot) isAdmin(chatID int64, from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: from.ID},
	})
	if err != nil {
		b.log.Warn("chat member lookup failed", zap.Int64("chat", chatID), zap.Error(err))
		return false
	}
	return member.Status == "creator" || member.Status == "administrator"
}

func (b *Bot) send(chatID int64, text string, replyTo int) {
	out := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		out.ReplyToMessageID = replyTo
	}
	if _, err := b.api.Send(out); err != nil {
		b.log.Error("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}
