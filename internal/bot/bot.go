// Package bot is the Telegram transport adapter. It owns nothing but
// wiring: commands and button presses are translated into engine calls
// and engine results into chat messages. All classification state
// lives in the engine's session store, keyed by chat id.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nyanyapushkina/log-analysis-bot/internal/config"
	"github.com/nyanyapushkina/log-analysis-bot/internal/engine"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
	"github.com/nyanyapushkina/log-analysis-bot/internal/output"
)

const (
	// Telegram caps messages at 4096 chars; stay under it.
	messageLimit = 4000

	callbackTogglePrefix = "toggle:"
)

// Bot runs the Telegram long-polling loop against the engine.
type Bot struct {
	api  *tgbotapi.BotAPI
	core *engine.Engine
	cfg  *config.Config

	// download fetches a file by URL; swapped out in tests.
	download func(url string) ([]byte, error)
}

// New connects to the Telegram API with the configured token.
func New(core *engine.Engine, cfg *config.Config) (*Bot, error) {
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is not configured (bot.token / LOGBOT_BOT_TOKEN)")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = cfg.Bot.Debug

	return &Bot{
		api:      api,
		core:     core,
		cfg:      cfg,
		download: downloadHTTP,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("bot: authorized as @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message == nil:
		// Ignore edits, channel posts and other update kinds.
	case update.Message.Document != nil:
		b.handleDocument(update.Message)
	case update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	sessionID := sessionIDFor(msg.Chat.ID)

	switch msg.Command() {
	case "start", "help":
		b.reply(msg, b.welcomeText(sessionID))
	case "logs":
		b.sendReport(msg, sessionID)
	case "filters":
		b.sendFilterKeyboard(msg.Chat.ID, sessionID)
	case "reset":
		b.core.ResetSession(sessionID)
		b.reply(msg, "Session cleared. Upload a log file to start over.")
	default:
		b.reply(msg, "Unknown command. Try /help.")
	}
}

func (b *Bot) welcomeText(sessionID string) string {
	var sb strings.Builder
	sb.WriteString("I classify uploaded log files into categories and build a grouped report.\n\n")
	sb.WriteString("Filters:\n")
	for _, e := range b.core.ListFilters(sessionID) {
		state := "on"
		if !e.Enabled {
			state = "off"
		}
		fmt.Fprintf(&sb, "• %s — %s\n", e.Category, state)
	}
	sb.WriteString("\nUpload a .log file, then send /logs for a report. /filters toggles categories.")
	return sb.String()
}

func (b *Bot) sendReport(msg *tgbotapi.Message, sessionID string) {
	rep, err := b.core.Analyze(sessionID)
	if err != nil {
		b.reply(msg, userMessage(err))
		return
	}

	text := output.FormatChat(rep, b.cfg.Report.TailLines)
	for _, chunk := range output.ChunkMessage(text, messageLimit) {
		b.send(msg.Chat.ID, chunk)
	}
}

func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	doc := msg.Document
	sessionID := sessionIDFor(msg.Chat.ID)

	if !b.cfg.Upload.ExtensionAllowed(doc.FileName) {
		b.reply(msg, fmt.Sprintf("Unsupported file type. Accepted: %s.",
			strings.Join(b.cfg.Upload.Extensions, ", ")))
		return
	}
	// Size is known before download; refuse early instead of pulling
	// the bytes and failing in the engine.
	if max := b.cfg.Upload.MaxBytes; max > 0 && int64(doc.FileSize) > max {
		b.reply(msg, fmt.Sprintf("File is too large (limit %d bytes).", max))
		return
	}

	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("bot: get file url: %v", err)
		b.reply(msg, "Could not fetch the file from Telegram, please retry.")
		return
	}
	raw, err := b.download(url)
	if err != nil {
		log.Printf("bot: download: %v", err)
		b.reply(msg, "Could not download the file, please retry.")
		return
	}

	if err := b.core.Upload(sessionID, doc.FileName, raw, ""); err != nil {
		b.reply(msg, userMessage(err))
		return
	}
	b.reply(msg, fmt.Sprintf("Got %s. Send /logs for a report.", doc.FileName))
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	data := cq.Data
	if !strings.HasPrefix(data, callbackTogglePrefix) || cq.Message == nil {
		return
	}
	sessionID := sessionIDFor(cq.Message.Chat.ID)
	cat := model.Category(strings.TrimPrefix(data, callbackTogglePrefix))

	enabled, err := b.core.ToggleFilter(sessionID, cat)
	if err != nil {
		b.answerCallback(cq.ID, userMessage(err))
		return
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	b.answerCallback(cq.ID, fmt.Sprintf("%s %s", cat, state))

	// Refresh the keyboard in place so the buttons show current state.
	edit := tgbotapi.NewEditMessageReplyMarkup(
		cq.Message.Chat.ID, cq.Message.MessageID, filterKeyboard(b.core.ListFilters(sessionID)))
	if _, err := b.api.Request(edit); err != nil {
		log.Printf("bot: edit keyboard: %v", err)
	}
}

func (b *Bot) sendFilterKeyboard(chatID int64, sessionID string) {
	msg := tgbotapi.NewMessage(chatID, "Toggle categories; changes apply on the next /logs.")
	msg.ReplyMarkup = filterKeyboard(b.core.ListFilters(sessionID))
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("bot: send keyboard: %v", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("bot: answer callback: %v", err)
	}
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		log.Printf("bot: reply: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("bot: send: %v", err)
	}
}

// userMessage turns a core error into a chat-friendly sentence.
func userMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrNoUploadedFile):
		return "No log file uploaded yet. Send me a .log file first."
	case errors.Is(err, engine.ErrInvalidCategory):
		return "That filter does not exist."
	case errors.Is(err, engine.ErrUploadTooLarge):
		return "The file is too large."
	case errors.Is(err, engine.ErrUnsupportedEncoding):
		return "I could not read that file as text. Please send UTF-8 logs."
	default:
		return "Something went wrong, please try again."
	}
}

func sessionIDFor(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func downloadHTTP(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
