package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mklimuk/sales-pilot/pkg/api"
	"github.com/mklimuk/sales-pilot/pkg/audio"
	"github.com/mklimuk/sales-pilot/pkg/config"
	"github.com/mklimuk/sales-pilot/pkg/db"
	"github.com/mklimuk/sales-pilot/pkg/integration/calendar"
	"github.com/mklimuk/sales-pilot/pkg/integration/discord"
	"github.com/mklimuk/sales-pilot/pkg/integration/telegram"
	"github.com/mklimuk/sales-pilot/pkg/ledger"
	"github.com/mklimuk/sales-pilot/pkg/notes"
	"github.com/mklimuk/sales-pilot/pkg/reminders"
	"github.com/mklimuk/sales-pilot/pkg/sync"
)

func main() {
	notesPath := flag.String("notes", "", "Path to the reminder notes directory")
	dbPath := flag.String("db", "sales-pilot.db", "Path to SQLite dismissal ledger")
	port := flag.String("port", "8080", "HTTP Port")
	configPath := flag.String("config", "", "Path to optional YAML config")
	credentialsFile := flag.String("google-credentials", "", "Path to Google service account JSON (enables the meeting feed)")
	calendarID := flag.String("calendar-id", "primary", "Google Calendar ID")
	gitSync := flag.Bool("git-sync", false, "Commit and push the notes directory after note creation")
	flag.Parse()

	if *notesPath == "" {
		log.Fatal("Please provide -notes path")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize DB
	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	repo := db.NewRepository(database)

	// Dismissal ledger + cross-instance watcher
	led := ledger.New(repo)
	if err := led.Refresh(reminders.DayKey(time.Now())); err != nil {
		log.Printf("Initial ledger load failed: %v", err)
	}
	watcher := ledger.NewWatcher(led, cfg.LedgerPollInterval.Std())
	watcher.Start()
	defer watcher.Stop()

	// Audio cue
	var cue audio.Cue = audio.NopCue{}
	if cfg.AudioCommand != "" {
		cue = audio.NewExecCue(cfg.AudioCommand, cfg.AudioArgs...)
	}

	// Notifiers (optional)
	var notifiers []reminders.Notifier

	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken != "" {
		dn, err := discord.NewNotifier(discordToken, os.Getenv("DISCORD_CHANNEL_ID"))
		if err != nil {
			log.Printf("Failed to create Discord notifier: %v", err)
		} else {
			log.Println("Discord notifier started")
			defer dn.Close()
			notifiers = append(notifiers, dn)
		}
	}

	// Engine wiring
	agg := reminders.NewAggregator()
	dispatcher := reminders.NewDispatcher(cue, notifiers...)
	// A configured 00:00 checkpoint is passed as a negative hour; the zero
	// value means the engine default.
	logoutHour := cfg.LogoutHour
	if logoutHour == 0 && cfg.LogoutMinute == 0 {
		logoutHour = -1
	}
	engine := reminders.NewEngine(agg, led, dispatcher, reminders.Config{
		Tick:         cfg.TickInterval.Std(),
		Window:       cfg.QualifyWindow.Std(),
		LogoutHour:   logoutHour,
		LogoutMinute: cfg.LogoutMinute,
	})

	// Telegram is both a notifier and a dismiss surface, so it needs the
	// engine and has to be registered before the dispatcher is first used.
	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	if telegramToken != "" {
		chatID, _ := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		tgBot, err := telegram.NewBot(telegramToken, chatID, engine)
		if err != nil {
			log.Printf("Failed to create Telegram bot: %v", err)
		} else {
			if err := tgBot.Start(); err != nil {
				log.Printf("Failed to start Telegram bot: %v", err)
			} else {
				log.Println("Telegram Bot started")
				defer tgBot.Stop()
				dispatcher.AddNotifier(tgBot)
			}
		}
	}

	// Note feed
	noteFeed := notes.NewFeed(*notesPath, cfg.NotesPollInterval.Std(), agg.ApplyNoteSnapshot)
	if err := noteFeed.Start(); err != nil {
		log.Fatalf("Failed to start note feed: %v", err)
	}
	defer noteFeed.Stop()

	// Meeting feed (optional)
	if *credentialsFile != "" {
		calService, err := calendar.NewService(context.Background(), *credentialsFile, *calendarID)
		if err != nil {
			log.Printf("Failed to create calendar service: %v", err)
		} else {
			calFeed := calendar.NewFeed(calService, cfg.CalendarInterval.Std(), agg.ApplyMeetingSnapshot)
			if err := calFeed.Start(); err != nil {
				log.Printf("Failed to start calendar feed: %v", err)
			} else {
				log.Println("Calendar feed started")
				defer calFeed.Stop()
			}
		}
	}

	engine.Start()
	defer engine.Stop()

	// Git sync of the notes directory (optional)
	var gitManager *sync.GitManager
	if *gitSync {
		gitManager = sync.NewGitManager(*notesPath)
	}

	tmplEngine := notes.NewTemplateEngine(filepath.Join(*notesPath, "Templates"))
	router := api.NewRouter(engine, dispatcher, led, *notesPath, tmplEngine, gitManager)

	log.Printf("Starting server on :%s", *port)
	if err := http.ListenAndServe(":"+*port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
