package board

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"raceboardbot/pkg/caster"
	"raceboardbot/pkg/helper"
	"raceboardbot/pkg/menus"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/replay"
	"raceboardbot/pkg/standings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	subcommandShowBoard = "show_board"
	subcommandSortBoard = "sort_board"
)

var commandHistory = regexp.MustCompile(`^\/hist_(\d+)$`)

// BoardApp renders the ranked leaderboard in its different views and
// owns the column sort state shared by all of them.
type BoardApp struct {
	bot                *tgbotapi.BotAPI
	appMenu            menus.ApplicationMenu
	snapshot           replay.Snapshot
	snapshotUpdateChan <-chan string
	caster             caster.ChannelCaster[replay.Snapshot]
	sortState          standings.SortState
	comparators        map[string]standings.Comparator
	mu                 sync.Mutex
	menuKeyboard       tgbotapi.ReplyKeyboardMarkup
}

func NewBoardApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, pubsubMgr *pubsub.PubSub[string]) *BoardApp {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(appMenu.ButtonBackTo()),
		),
	)

	ba := &BoardApp{
		bot:                bot,
		appMenu:            appMenu,
		caster:             caster.JSONChannelCaster[replay.Snapshot]{},
		snapshotUpdateChan: pubsubMgr.Subscribe(replay.PubSubSnapshotTopic),
		comparators:        standings.DefaultComparators(),
		menuKeyboard:       menuKeyboard,
	}

	go ba.updater()

	return ba
}

func (ba *BoardApp) updater() {
	for payload := range ba.snapshotUpdateChan {
		snapshot, err := ba.caster.From(payload)
		if err != nil {
			log.Printf("Error casting snapshot: %s\n", err.Error())
			continue
		}
		ba.update(snapshot)
	}
}

func (ba *BoardApp) update(snapshot replay.Snapshot) {
	ba.mu.Lock()
	defer ba.mu.Unlock()
	ba.snapshot = snapshot
}

func (ba *BoardApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if commandHistory.MatchString(command) {
		carNumber, _ := strconv.Atoi(commandHistory.FindStringSubmatch(command)[1])
		return true, func(ctx context.Context, chatId int64) error {
			return ba.sendHistory(chatId, nil, carNumber, 0)
		}
	}
	return false, nil
}

func (ba *BoardApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	switch data[0] {
	case subcommandShowBoard:
		if len(data) < 2 {
			return false, nil
		}
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			return ba.sendBoard(query.Message.Chat.ID, &query.Message.MessageID, data[1])
		}
	case subcommandSortBoard:
		if len(data) < 3 {
			return false, nil
		}
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			ba.mu.Lock()
			ba.sortState.Click(data[2])
			ba.mu.Unlock()
			return ba.sendBoard(query.Message.Chat.ID, &query.Message.MessageID, data[1])
		}
	case subcommandPager:
		if len(data) < 4 {
			return false, nil
		}
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			return ba.handlePagerCallbackQuery(query.Message.Chat.ID, query.Message.MessageID, data[1:]...)
		}
	}
	return false, nil
}

func (ba *BoardApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == ba.appMenu.Name {
		return true, func(ctx context.Context, chatId int64) error {
			err := ba.sendBoard(chatId, nil, inlineKeyboardGap)
			if err != nil {
				log.Printf("An error occured: %s", err.Error())
			}
			return nil
		}
	} else if button == ba.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = ba.appMenu.PrevMenu()
			_, err := ba.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (ba *BoardApp) sendBoard(chatId int64, messageId *int, view string) error {
	ba.mu.Lock()
	snapshot := ba.snapshot
	items := make([]standings.LeaderboardItem, len(snapshot.Items))
	copy(items, snapshot.Items)
	ba.sortState.Apply(items, ba.comparators)
	keyboard := ba.getInlineKeyboard(view)
	ba.mu.Unlock()

	if len(items) == 0 {
		msg := tgbotapi.NewMessage(chatId, "No hay datos de carrera")
		_, err := ba.bot.Send(msg)
		return err
	}

	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()

	switch view {
	case inlineKeyboardBest:
		t.AppendHeader(table.Row{"P", tableDriver, "Mejor"})
	case inlineKeyboardLast:
		t.AppendHeader(table.Row{tableDriver, "Última", "Mejor"})
	case inlineKeyboardSectors:
		t.AppendHeader(table.Row{tableDriver, "Sectores"})
	case inlineKeyboardPits:
		t.AppendHeader(table.Row{tableDriver, "Paradas", "Box"})
	case inlineKeyboardInfo:
		t.AppendHeader(table.Row{tableDriver, "Nombre", "Vueltas"})
	default:
		t.AppendHeader(table.Row{"P", tableDriver, "Dif"})
	}
	for _, item := range items {
		switch view {
		case inlineKeyboardBest:
			best := helper.ToLapTime(item.BestLapTime)
			if badge := snapshot.Analysis.BadgeFor(item.Lap); badge.Symbol() != "" {
				best += " " + badge.Symbol()
			}
			t.AppendRow([]interface{}{
				item.Position,
				helper.GetDriverCodeName(item.DriverName),
				best,
			})
		case inlineKeyboardLast:
			t.AppendRow([]interface{}{
				helper.GetDriverCodeName(item.DriverName),
				helper.ToLapTime(item.LastLapTime),
				helper.ToLapTime(item.BestLapTime),
			})
		case inlineKeyboardSectors:
			t.AppendRow([]interface{}{
				helper.GetDriverCodeName(item.DriverName),
				fmt.Sprintf("%s %s %s", helper.ToSectorTime(item.Lap.S1), helper.ToSectorTime(item.Lap.S2), helper.ToSectorTime(item.Lap.S3)),
			})
		case inlineKeyboardPits:
			stops := 0
			for _, lap := range item.History {
				if lap.CrossedPit {
					stops++
				}
			}
			t.AppendRow([]interface{}{
				helper.GetDriverCodeName(item.DriverName),
				stops,
				helper.ToLapTime(item.Lap.PitTime),
			})
		case inlineKeyboardInfo:
			t.AppendRow([]interface{}{
				helper.GetDriverCodeName(item.DriverName),
				item.DriverName,
				item.Lap.LapNumber,
			})
		default:
			t.AppendRow([]interface{}{
				item.Position,
				helper.GetDriverCodeName(item.DriverName),
				item.Gap.String(),
			})
		}
	}
	t.Render()

	text := fmt.Sprintf("```\nClasificación de %q\n%s ‣ Vuelta %d/%d\n\n%s```", snapshot.EventName, snapshot.Clock, snapshot.LapCount, snapshot.LapTotal, b.String())
	if view == inlineKeyboardInfo {
		hints := make([]string, 0, len(items))
		for _, item := range items {
			hints = append(hints, fmt.Sprintf(" ▸ %s ➡ /hist\\_%d", helper.GetDriverCodeName(item.DriverName), item.CarNumber))
		}
		text += "\nHistórico por coche:\n" + strings.Join(hints, "\n")
	}
	var cfg tgbotapi.Chattable
	if messageId == nil {
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		cfg = msg
	} else {
		msg := tgbotapi.NewEditMessageText(chatId, *messageId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = &keyboard
		cfg = msg
	}
	_, err := ba.bot.Send(cfg)
	return err
}

func (ba *BoardApp) getInlineKeyboard(view string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardGap+" "+symbolDiff, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardGap)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardBest+" "+symbolTimes, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardBest)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardLast+" "+symbolTimes, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardLast)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardSectors, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardSectors)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardPits+" "+symbolPits, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardPits)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardInfo, fmt.Sprintf("%s:%s", subcommandShowBoard, inlineKeyboardInfo)),
		),
		tgbotapi.NewInlineKeyboardRow(
			ba.sortButton(view, "Clase", standings.ColumnClass),
			ba.sortButton(view, "Vueltas", standings.ColumnLaps),
			ba.sortButton(view, "Dif", standings.ColumnGap),
		),
		tgbotapi.NewInlineKeyboardRow(
			ba.sortButton(view, "Última", standings.ColumnLastLap),
			ba.sortButton(view, "Mejor", standings.ColumnBestLap),
		),
	)
}

func (ba *BoardApp) sortButton(view, label, column string) tgbotapi.InlineKeyboardButton {
	label = symbolSort + " " + label + sortMarker(ba.sortState.DirectionOf(column))
	return tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s:%s:%s", subcommandSortBoard, view, column))
}

func sortMarker(d standings.Direction) string {
	switch d {
	case standings.DirectionAscending:
		return " ▲"
	case standings.DirectionDescending:
		return " ▼"
	}
	return ""
}
