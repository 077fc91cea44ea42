package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"beseda/internal/menu"
)

// keyboardFor converts a rendered screen's button rows into an inline
// keyboard. Screens without buttons yield nil.
func keyboardFor(view menu.View) *tgbotapi.InlineKeyboardMarkup {
	if len(view.Keyboard) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Keyboard))
	for _, row := range view.Keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, string(btn.Action)))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
