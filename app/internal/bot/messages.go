package bot

import (
	"errors"
	"fmt"

	"github.com/mymmrac/telego"

	"gift-link/app/internal/services"
)

const (
	MsgOwnerGreeting = "Hi! Press the button below to issue a new gift link."
	MsgPrompt        = "Send the number of stars or a link to the NFT you want to request."
	MsgSponsorPrompt = "Subscribe to our sponsors to support the project:"
	MsgUnavailable   = "This action is unavailable."
	MsgError         = "An error occurred, please try again."

	MsgStarsNotPositive = "The star count must be greater than zero. Send another number."
	MsgStarsInvalid     = "That number could not be parsed. Send a plain whole number."
	MsgUnrecognized     = "Send either a whole number of stars or an http(s) link to an NFT."
)

// ReplyFor maps a flow result to the user-facing reply text. An empty
// string means no reply should be sent.
func ReplyFor(result services.FlowResult) string {
	switch result.Outcome {
	case services.OutcomePrompted:
		return MsgPrompt
	case services.OutcomeIssued:
		return fmt.Sprintf("Your link is ready:\n%s", result.Link)
	case services.OutcomeRejected:
		switch {
		case errors.Is(result.Err, services.ErrStarsNotPositive):
			return MsgStarsNotPositive
		case errors.Is(result.Err, services.ErrStarsInvalid):
			return MsgStarsInvalid
		default:
			return MsgUnrecognized
		}
	case services.OutcomeFailed:
		return MsgError
	case services.OutcomeUnavailable:
		return MsgUnavailable
	default:
		return ""
	}
}

func ownerKeyboard() *telego.InlineKeyboardMarkup {
	return &telego.InlineKeyboardMarkup{
		InlineKeyboard: [][]telego.InlineKeyboardButton{
			{
				{Text: "🔗 Get link", CallbackData: callbackGetLink},
			},
		},
	}
}

func sponsorKeyboard(links []string) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(links))
	for i, link := range links {
		rows = append(rows, []telego.InlineKeyboardButton{
			{Text: fmt.Sprintf("Sponsor %d", i+1), URL: link},
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return &telego.InlineKeyboardMarkup{InlineKeyboard: rows}
}
