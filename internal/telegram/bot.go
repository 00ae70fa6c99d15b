// Package telegram runs the household bot: menu on demand, pantry alerts,
// rotation suggestions and recipe clipping from chat.
package telegram

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"nigela/internal/app"
	"nigela/internal/catalog"
	"nigela/internal/config"
	"nigela/internal/menu"
	"nigela/internal/metrics"
	"nigela/internal/planner"
)

// Bot wraps the Telegram API around the planner application.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	store        *catalog.Store
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram bot with long polling.
func NewBot(cfg *config.Config, application *app.App, store *catalog.Store, metricsStore *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:          api,
		app:          application,
		store:        store,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if !b.isAllowed(update.Message.From.ID) {
				log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
				continue
			}
			go b.processMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/menu"):
		b.handleMenu(ctx, msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/menu")))
	case text == "/lowstock":
		b.handleLowStock(ctx, msg.Chat.ID)
	case text == "/rotation":
		b.handleRotation(ctx, msg.Chat.ID)
	case text == "/status":
		b.handleStatus(msg.Chat.ID)
	case strings.HasPrefix(text, "http://"), strings.HasPrefix(text, "https://"):
		b.handleClip(ctx, msg.Chat.ID, text)
	default:
		b.reply(msg.Chat.ID, "Commands: /menu [today|tomorrow|YYYY-MM-DD], /lowstock, /rotation, /status - or send a recipe URL to clip it.")
	}
}

func (b *Bot) handleMenu(ctx context.Context, chatID int64, arg string) {
	date, err := app.ParseDay(arg, time.Now().In(b.cfg.Location()))
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	plan, err := b.app.SuggestDay(ctx, date)
	if err != nil {
		log.Printf("Error planning day: %v", err)
		b.reply(chatID, fmt.Sprintf("Could not plan %s: %v", date.Format("2006-01-02"), err))
		return
	}
	b.reply(chatID, formatPlanMarkdown(plan))
}

func (b *Bot) handleLowStock(ctx context.Context, chatID int64) {
	snapshot, err := b.store.PantrySnapshot(ctx)
	if err != nil {
		log.Printf("Error loading pantry: %v", err)
		b.reply(chatID, "Could not read the pantry.")
		return
	}

	low := snapshot.BelowPar()
	if len(low) == 0 {
		b.reply(chatID, "Pantry looks healthy - nothing below par.")
		return
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Ingredient < low[j].Ingredient })

	var sb strings.Builder
	sb.WriteString("*Running low*\n\n")
	for _, e := range low {
		fmt.Fprintf(&sb, "• %s: %g %s on hand (par %g)\n", e.Ingredient, e.QtyOnHand, e.Unit, e.MinPar)
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleRotation(ctx context.Context, chatID int64) {
	suggestions, err := b.app.RotationSuggestions(ctx)
	if err != nil {
		log.Printf("Error loading rotation suggestions: %v", err)
		b.reply(chatID, "Could not read rotation history.")
		return
	}

	categories := make([]string, 0, len(suggestions))
	for c := range suggestions {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("*Fresh this fortnight*\n\n")
	for _, c := range categories {
		items := suggestions[c]
		if len(items) > 5 {
			items = items[:5]
		}
		fmt.Fprintf(&sb, "*%s*: %s\n", c, strings.Join(items, ", "))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleStatus(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.reply(chatID, "Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("*Usage & Health Report*\n\n")

	sb.WriteString("*Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}

	sb.WriteString("\n*System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize)

	b.reply(chatID, sb.String())
}

func (b *Bot) handleClip(ctx context.Context, chatID int64, url string) {
	b.reply(chatID, "Clipping recipe...")

	clipCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := b.app.IngestURL(clipCtx, url); err != nil {
		log.Printf("Error clipping recipe: %v", err)
		b.reply(chatID, fmt.Sprintf("Could not clip that: %v", err))
		return
	}
	b.reply(chatID, "Recipe clipped into the catalogue.")
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// formatPlanMarkdown renders a day plan as a Telegram Markdown message.
func formatPlanMarkdown(plan planner.DayPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Menu for %s*\n", plan.Date.Format("Monday, 02 Jan"))

	for _, meal := range menu.MealOrder {
		slots := plan.Meals[meal]
		if len(slots) == 0 {
			continue
		}
		names := make([]string, 0, len(slots))
		for slot := range slots {
			names = append(names, slot)
		}
		sort.Strings(names)

		fmt.Fprintf(&sb, "\n*%s*\n", mealTitle(meal))
		for _, slot := range names {
			d := slots[slot]
			fmt.Fprintf(&sb, "• %s: %s (%dm)\n", slot, d.Name, d.CookMinutes)
		}
	}
	return sb.String()
}

func mealTitle(meal menu.MealType) string {
	parts := strings.Split(string(meal), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
