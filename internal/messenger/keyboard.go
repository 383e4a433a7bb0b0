package messenger

import "salesscout-engine/internal/domain"

// Button is one chat keyboard button in the platform's wire format.
type Button struct {
	Text          string `json:"TEXT"`
	BotID         string `json:"BOT_ID"`
	Command       string `json:"COMMAND"`
	CommandParams string `json:"COMMAND_PARAMS"`
	Display       string `json:"DISPLAY"`
	BgColor       string `json:"BG_COLOR"`
	TextColor     string `json:"TEXT_COLOR"`
}

// Keyboard is rows of buttons.
type Keyboard [][]Button

// FeedbackKeyboard builds the three dossier-rating buttons. Commands come
// from the closed FeedbackKind enum so the webhook dispatcher and the
// buttons can never drift apart.
func (c *Client) FeedbackKeyboard(companyID string) Keyboard {
	row := func(text string, kind domain.FeedbackKind, bg string) []Button {
		return []Button{{
			Text:          text,
			BotID:         c.cfg.BotID,
			Command:       string(kind),
			CommandParams: companyID,
			Display:       "LINE",
			BgColor:       bg,
			TextColor:     "#fff",
		}}
	}

	return Keyboard{
		row("👍 Полезно", domain.FeedbackPositive, "#29c75f"),
		row("👎 Не полезно", domain.FeedbackNegative, "#ff4d4d"),
		row("💬 Оставить отзыв", domain.FeedbackComment, "#2196F3"),
	}
}
