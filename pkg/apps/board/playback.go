package board

import (
	"context"
	"fmt"
	"strings"

	"raceboardbot/pkg/menus"
	"raceboardbot/pkg/replay"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	subcommandPlayback = "playback"

	playbackStart  = "start"
	playbackPause  = "pause"
	playbackFinish = "finish"
	playbackPrev   = "prev"
	playbackNext   = "next"
	playbackMode   = "mode"
)

// PlaybackApp drives the replay: clock transport in live mode, lap
// stepping in scrub mode.
type PlaybackApp struct {
	bot     *tgbotapi.BotAPI
	appMenu menus.ApplicationMenu
	rm      *replay.Manager
}

func NewPlaybackApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, rm *replay.Manager) *PlaybackApp {
	return &PlaybackApp{
		bot:     bot,
		appMenu: appMenu,
		rm:      rm,
	}
}

func (pa *PlaybackApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

func (pa *PlaybackApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] == subcommandPlayback && len(data) >= 2 {
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			pa.applyAction(data[1])
			return pa.sendStatus(query.Message.Chat.ID, &query.Message.MessageID)
		}
	}
	return false, nil
}

func (pa *PlaybackApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == pa.appMenu.Name {
		return true, func(ctx context.Context, chatId int64) error {
			return pa.sendStatus(chatId, nil)
		}
	} else if button == pa.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = pa.appMenu.PrevMenu()
			_, err := pa.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (pa *PlaybackApp) applyAction(action string) {
	switch action {
	case playbackStart:
		pa.rm.Start()
	case playbackPause:
		pa.rm.Pause()
	case playbackFinish:
		pa.rm.Finish()
	case playbackPrev:
		pa.rm.PreviousLap()
	case playbackNext:
		pa.rm.NextLap()
	case playbackMode:
		if pa.rm.Snapshot().Mode == replay.ModeLive {
			pa.rm.SetMode(replay.ModeScrub)
		} else {
			pa.rm.SetMode(replay.ModeLive)
		}
	}
}

func (pa *PlaybackApp) sendStatus(chatId int64, messageId *int) error {
	snapshot := pa.rm.Snapshot()

	mode := "En directo"
	if snapshot.Mode == replay.ModeScrub {
		mode = "Vuelta a vuelta"
	}
	text := fmt.Sprintf(`Reproducción de %s:
 ‣ Modo: %s
 ‣ Reloj: %s (%s)
 ‣ Vuelta: %d/%d`,
		snapshot.EventName,
		mode,
		snapshot.Clock,
		snapshot.ClockState,
		snapshot.LapCount,
		snapshot.LapTotal)

	keyboard := getPlaybackInlineKeyboard()
	var cfg tgbotapi.Chattable
	if messageId == nil {
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ReplyMarkup = keyboard
		cfg = msg
	} else {
		msg := tgbotapi.NewEditMessageText(chatId, *messageId, text)
		msg.ReplyMarkup = &keyboard
		cfg = msg
	}
	_, err := pa.bot.Send(cfg)
	return err
}

func getPlaybackInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(symbolPlay, fmt.Sprintf("%s:%s", subcommandPlayback, playbackStart)),
			tgbotapi.NewInlineKeyboardButtonData(symbolPause, fmt.Sprintf("%s:%s", subcommandPlayback, playbackPause)),
			tgbotapi.NewInlineKeyboardButtonData(symbolFinish, fmt.Sprintf("%s:%s", subcommandPlayback, playbackFinish)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(symbolPrev, fmt.Sprintf("%s:%s", subcommandPlayback, playbackPrev)),
			tgbotapi.NewInlineKeyboardButtonData(symbolNext, fmt.Sprintf("%s:%s", subcommandPlayback, playbackNext)),
			tgbotapi.NewInlineKeyboardButtonData(symbolMode+" Modo", fmt.Sprintf("%s:%s", subcommandPlayback, playbackMode)),
		),
	)
}
