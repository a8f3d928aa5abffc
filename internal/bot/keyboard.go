package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
)

// filterKeyboard builds one toggle button per category, in canonical
// order, one per row. Button labels show current state; callback data
// carries the category name.
func filterKeyboard(entries []filter.Entry) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries))
	for _, e := range entries {
		mark := "✅"
		if !e.Enabled {
			mark = "🚫"
		}
		label := fmt.Sprintf("%s %s", mark, e.Category)
		data := callbackTogglePrefix + string(e.Category)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
