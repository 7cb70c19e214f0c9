package board

import (
	"bytes"
	"fmt"
	"strconv"

	"raceboardbot/pkg/helper"
	"raceboardbot/pkg/race"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	subcommandPager = "board_pager"

	lapsPerPage = 10
)

func (ba *BoardApp) handlePagerCallbackQuery(chatId int64, messageId int, data ...string) error {
	carNumber, _ := strconv.Atoi(data[0])
	pagerType := data[1]
	currentPage, _ := strconv.Atoi(data[2])

	if pagerType == "next" {
		return ba.sendHistory(chatId, &messageId, carNumber, currentPage+1)
	}
	if pagerType == "prev" && currentPage > 0 {
		return ba.sendHistory(chatId, &messageId, carNumber, currentPage-1)
	}
	return nil
}

func (ba *BoardApp) sendHistory(chatId int64, messageId *int, carNumber, page int) error {
	ba.mu.Lock()
	snapshot := ba.snapshot
	ba.mu.Unlock()

	var history []race.Lap
	driverName := ""
	for _, item := range snapshot.Items {
		if item.CarNumber == carNumber {
			driverName = item.DriverName
			for _, lap := range item.History {
				if !lap.IsZero() {
					history = append(history, lap)
				}
			}
			break
		}
	}
	if len(history) == 0 {
		msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("No hay vueltas registradas para el coche %d", carNumber))
		_, err := ba.bot.Send(msg)
		return err
	}

	maxPages := (len(history) + lapsPerPage - 1) / lapsPerPage
	if page >= maxPages {
		page = maxPages - 1
	}
	from := page * lapsPerPage
	to := from + lapsPerPage
	if to > len(history) {
		to = len(history)
	}

	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()
	t.AppendHeader(table.Row{"VTA", "Tiempo", "P"})
	for _, lap := range history[from:to] {
		lapTime := helper.ToLapTime(lap.LapTime)
		if badge := snapshot.Analysis.BadgeFor(lap); badge.Symbol() != "" {
			lapTime += " " + badge.Symbol()
		}
		t.AppendRow([]interface{}{
			lap.LapNumber,
			lapTime,
			lap.Position,
		})
	}
	t.Render()

	keyboard := historyMarkup(carNumber, page, maxPages)
	text := fmt.Sprintf("```\nHistórico del coche %d (%s)\n\n%s```", carNumber, helper.GetDriverCodeName(driverName), b.String())
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

func historyMarkup(carNumber, currentPage, maxPages int) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if currentPage > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Anterior", fmt.Sprintf("%s:%d:prev:%d", subcommandPager, carNumber, currentPage)))
	}
	if currentPage < maxPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Siguiente", fmt.Sprintf("%s:%d:next:%d", subcommandPager, carNumber, currentPage)))
	}
	if len(row) == 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Página 1/%d", maxPages), fmt.Sprintf("%s:%d:prev:0", subcommandPager, carNumber)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}
