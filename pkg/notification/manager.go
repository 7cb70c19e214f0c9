package notification

import (
	"context"
	"log"
	"strconv"

	"raceboardbot/pkg/caster"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/replay"
	"raceboardbot/pkg/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
)

type Lister interface {
	ListUsersForAlert(alertType string) ([]settings.TelegramUser, error)
}

// Manager pushes race alerts to the users that opted in.
type Manager struct {
	ctx            context.Context
	lister         Lister
	bot            *tgbotapi.BotAPI
	pubsubMgr      *pubsub.PubSub[string]
	finishedCaster caster.ChannelCaster[replay.RaceFinished]
	fastestCaster  caster.ChannelCaster[replay.FastestLap]
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, pubsubMgr *pubsub.PubSub[string], lister Lister) *Manager {
	return &Manager{
		ctx:            ctx,
		bot:            bot,
		pubsubMgr:      pubsubMgr,
		lister:         lister,
		finishedCaster: caster.JSONChannelCaster[replay.RaceFinished]{},
		fastestCaster:  caster.JSONChannelCaster[replay.FastestLap]{},
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	finishedChan := m.pubsubMgr.Subscribe(replay.PubSubRaceFinishedTopic)
	fastestChan := m.pubsubMgr.Subscribe(replay.PubSubFastestLapTopic)
	for {
		select {
		case <-exitChan:
			return
		case payload := <-finishedChan:
			event, err := m.finishedCaster.From(payload)
			if err != nil {
				log.Printf("Error casting race finished from json: %s", err.Error())
				continue
			}
			log.Printf("Race finished: %s, winner #%d\n", event.EventName, event.WinnerCar)
			m.handleNotification(settings.Finish, "Carrera finalizada:", event.String())
		case payload := <-fastestChan:
			event, err := m.fastestCaster.From(payload)
			if err != nil {
				log.Printf("Error casting fastest lap from json: %s", err.Error())
				continue
			}
			log.Printf("New fastest lap in %s: #%d\n", event.EventName, event.CarNumber)
			m.handleNotification(settings.FastestLap, "Nueva vuelta rápida:", event.String())
		}
	}
}

func (m *Manager) handleNotification(alertType, subject, message string) {
	receipients, err := m.lister.ListUsersForAlert(alertType)
	if err != nil {
		log.Printf("Error listing users for alert: %s", err.Error())
		return
	}
	log.Printf("Sending %s notification to %d telegram users\n", alertType, len(receipients))
	err = m.sendNotification(receipients, subject, message)
	if err != nil {
		log.Printf("Error notifying users: %s", err.Error())
	}
}

func (m *Manager) sendNotification(tusers []settings.TelegramUser, subject, message string) error {
	if len(tusers) == 0 {
		return nil
	}

	tg := &Telegram{}
	tg.SetClient(m.bot)

	for _, tuser := range tusers {
		chatId, _ := strconv.ParseInt(tuser.ChatID, 0, 64)
		tg.AddReceivers(chatId)
	}

	n := notify.NewWithServices(tg)
	err := n.Send(m.ctx, subject, message)
	if err != nil {
		return err
	}
	return nil
}
