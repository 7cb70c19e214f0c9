package board

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"raceboardbot/pkg/menus"
	"raceboardbot/pkg/pubsub"
)

type stubMenuer struct{}

func (stubMenuer) Menu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{}
}

func newTestBoardApp() *BoardApp {
	appMenu := menus.NewApplicationMenu("Clasificación", "menu", stubMenuer{})
	return NewBoardApp(nil, appMenu, pubsub.NewPubSub[string]())
}

func TestAcceptCallbackRejectsTruncatedData(t *testing.T) {
	ba := newTestBoardApp()

	truncated := []string{
		subcommandShowBoard,
		subcommandSortBoard,
		subcommandSortBoard + ":" + inlineKeyboardGap,
		subcommandPager,
		subcommandPager + ":8:next",
	}
	for _, data := range truncated {
		accepted, handler := ba.AcceptCallback(&tgbotapi.CallbackQuery{Data: data})
		assert.False(t, accepted, "data %q", data)
		assert.Nil(t, handler, "data %q", data)
	}
}

func TestAcceptCallbackAcceptsCompleteData(t *testing.T) {
	ba := newTestBoardApp()

	complete := []string{
		fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardGap),
		fmt.Sprintf("%s:%s:%s", subcommandSortBoard, inlineKeyboardGap, inlineKeyboardGap),
		fmt.Sprintf("%s:8:next:0", subcommandPager),
	}
	for _, data := range complete {
		accepted, handler := ba.AcceptCallback(&tgbotapi.CallbackQuery{Data: data})
		assert.True(t, accepted, "data %q", data)
		assert.NotNil(t, handler, "data %q", data)
	}
}
