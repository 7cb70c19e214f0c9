package mainapp

import (
	"context"
	"fmt"

	"raceboardbot/pkg/apps"
	"raceboardbot/pkg/apps/board"
	"raceboardbot/pkg/menus"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/replay"
	"raceboardbot/pkg/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	menuStart      = "/start"
	menuMenu       = "/menu"
	buttonBoard    = "Clasificación"
	buttonPlayback = "Reproducción"
	buttonSettings = "Ajustes"
	appName        = "menu"
)

var (
	menuKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonBoard),
			tgbotapi.NewKeyboardButton(buttonPlayback),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSettings),
		),
	)
)

type menuer struct{}

func (m menuer) Menu() tgbotapi.ReplyKeyboardMarkup {
	return menuKeyboard
}

type MainApp struct {
	bot       *tgbotapi.BotAPI
	accepters []apps.Accepter
}

func NewMainApp(ctx context.Context, bot *tgbotapi.BotAPI, pubsubMgr *pubsub.PubSub[string], rm *replay.Manager, sm *settings.Manager) (*MainApp, error) {
	boardAppMenu := menus.NewApplicationMenu(buttonBoard, appName, menuer{})
	boardApp := board.NewBoardApp(bot, boardAppMenu, pubsubMgr)

	playbackAppMenu := menus.NewApplicationMenu(buttonPlayback, appName, menuer{})
	playbackApp := board.NewPlaybackApp(bot, playbackAppMenu, rm)

	settingsAppMenu := menus.NewApplicationMenu(buttonSettings, appName, menuer{})
	settingsApp := board.NewSettingsApp(bot, settingsAppMenu, sm)

	accepters := []apps.Accepter{boardApp, playbackApp, settingsApp}

	return &MainApp{
		bot:       bot,
		accepters: accepters,
	}, nil
}

func (m *MainApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == menuStart {
		return true, m.renderStart()
	} else if command == menuMenu {
		return true, m.renderMenu()
	}
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCommand(command)
		if accept {
			return true, handler
		}
	}

	return false, nil
}

func (m *MainApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCallback(query)
		if accept {
			return true, handler
		}
	}

	return false, nil
}

func (m *MainApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptButton(button)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Hola, soy el bot de clasificación en directo. Reproduce la carrera y muestra la tabla de tiempos.\n\n"
		message += "Puedes usar el siguiente comando:\n\n"
		message += fmt.Sprintf("%s - Muestra el menú del bot\n", menuMenu)
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}

func (m *MainApp) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Menú del bot.\n\n"
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}
