package main

import (
	"context"
	"log"
	"os"
	"time"

	"raceboardbot/pkg/apps/board"
	"raceboardbot/pkg/apps/mainapp"
	"raceboardbot/pkg/notification"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/race"
	"raceboardbot/pkg/replay"
	"raceboardbot/pkg/settings"
	"raceboardbot/pkg/webserver"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var bot *tgbotapi.BotAPI

func main() {
	var err error
	// get token from env
	token := os.Getenv("TELEGRAM_TOKEN")
	bot, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		// Abort if something is wrong
		log.Panic(err)
	}

	// Set this to true to log all interactions with telegram servers
	bot.Debug = false

	feedFile := os.Getenv("RACE_FEED_FILE")
	if feedFile == "" {
		log.Panic("RACE_FEED_FILE is not set")
	}
	eventName := os.Getenv("RACE_EVENT_NAME")
	if eventName == "" {
		eventName = feedFile
	}

	set, err := race.LoadFile(feedFile, eventName)
	if err != nil {
		log.Panic(err)
	}
	log.Printf("Loaded %q: %d cars, %d laps\n", set.EventName, len(set.Cars), set.LapTotal())

	sm, err := settings.NewManager()
	if err != nil {
		log.Panic(err)
	}
	defer sm.Close()

	pubsubMgr := pubsub.NewPubSub[string]()
	rm := replay.NewManager(set, pubsubMgr)

	// Create a new cancellable background context. Calling `cancel()` leads to the cancellation of the context
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	exitChan := make(chan bool)

	nm := notification.NewManager(ctx, bot, pubsubMgr, sm)
	go nm.Start(exitChan)

	app, err := mainapp.NewMainApp(ctx, bot, pubsubMgr, rm, sm)
	if err != nil {
		log.Panic(err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	// `updates` is a golang channel which receives telegram updates
	updates := bot.GetUpdatesChan(u)

	// Pass cancellable context to goroutine
	go receiveUpdates(ctx, updates, app)

	// Tell the user the bot is online
	log.Println("Start listening for updates. Press Ctrl-C to stop it")

	syncTicker := time.NewTicker(time.Second)
	rm.Sync(syncTicker, exitChan)

	// blocks until SIGINT, then shuts down gracefully
	ws := webserver.NewManager(rm)
	ws.Serve()

	syncTicker.Stop()
	close(exitChan)
	cancel()
}

func receiveUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel, app *mainapp.MainApp) {
	for {
		select {
		// stop looping if ctx is cancelled
		case <-ctx.Done():
			return
		// receive update from channel and then handle it
		case update := <-updates:
			handleUpdate(ctx, update, app)
		}
	}
}

func handleUpdate(ctx context.Context, update tgbotapi.Update, app *mainapp.MainApp) {
	switch {
	// Handle messages
	case update.Message != nil:
		handleMessage(ctx, update.Message, app)
	// Handle button clicks
	case update.CallbackQuery != nil:
		handleCallbackQuery(ctx, update.CallbackQuery, app)
	}
}

func handleMessage(ctx context.Context, message *tgbotapi.Message, app *mainapp.MainApp) {
	user := message.From
	text := message.Text

	if user == nil {
		return
	}

	// Print to console
	log.Printf("%s wrote %s", user.FirstName, text)

	ctx = context.WithValue(ctx, board.UserContextKey, user)
	ctx = context.WithValue(ctx, board.ChatContextKey, message.Chat)

	var accept bool
	var handler func(ctx context.Context, chatId int64) error
	if message.IsCommand() {
		accept, handler = app.AcceptCommand(text)
	} else {
		accept, handler = app.AcceptButton(text)
	}
	if !accept {
		return
	}

	if err := handler(ctx, message.Chat.ID); err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}

func handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery, app *mainapp.MainApp) {
	accept, handler := app.AcceptCallback(query)
	if !accept {
		return
	}

	ctx = context.WithValue(ctx, board.UserContextKey, query.From)
	ctx = context.WithValue(ctx, board.ChatContextKey, query.Message.Chat)

	// close the spinner on the client
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := bot.Request(callback); err != nil {
		log.Printf("An error occured: %s", err.Error())
	}

	if err := handler(ctx, query); err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}
