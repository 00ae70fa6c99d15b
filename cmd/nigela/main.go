package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"nigela/internal/app"
	"nigela/internal/catalog"
	"nigela/internal/config"
	"nigela/internal/database"
	"nigela/internal/enrich"
	"nigela/internal/ingest"
	"nigela/internal/llm"
	"nigela/internal/mailer"
	"nigela/internal/metrics"
	"nigela/internal/rotation"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(db.SQL)
	history := rotation.NewManager(db.SQL, cfg.HistoryWindowDays)
	metricsStore := metrics.NewStore(db.SQL)

	// LLM is optional: planning and plain email work without one.
	var textGen llm.TextGenerator
	switch {
	case cfg.GeminiAPIKey != "":
		gemini, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		if closer, ok := gemini.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = gemini
	case cfg.GroqAPIKey != "":
		textGen = llm.NewGroqClient(cfg)
	}

	var enricher *enrich.Enricher
	var nutrition *enrich.NutritionAnalyzer
	var clip *ingest.Clipper
	if textGen != nil {
		// Free-tier friendly: well under 15 requests per minute.
		enricher = enrich.NewEnricher(textGen, 0.2)
		nutrition = enrich.NewNutritionAnalyzer(textGen)
		clip = ingest.NewClipper(textGen)
	}

	var blog ingest.BlogClient
	if cfg.BlogURL != "" {
		blog = ingest.NewBlogClient(cfg)
	}

	sender, err := mailer.NewSenderFromConfig(cfg, log.Default())
	if err != nil {
		log.Fatalf("Failed to initialize email sender: %v", err)
	}

	application := app.NewApp(cfg, db, store, history, metricsStore, enricher, nutrition, clip, blog, sender)
	loc := cfg.Location()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "bootstrap":
		if err := application.Bootstrap(ctx); err != nil {
			log.Fatalf("Bootstrap failed: %v", err)
		}
	case "suggest":
		date := parseDateFlag("suggest", os.Args[2:], loc)
		plan, err := application.SuggestDay(ctx, date)
		if err != nil {
			log.Fatalf("Suggestion failed: %v", err)
		}
		fmt.Print(mailer.RenderText("", plan, "", nil))
	case "email":
		date := parseDateFlag("email", os.Args[2:], loc)
		if err := application.EmailDay(ctx, date); err != nil {
			log.Fatalf("Email failed: %v", err)
		}
	case "cards":
		cardsCmd := flag.NewFlagSet("cards", flag.ExitOnError)
		dateArg := cardsCmd.String("date", "today", "today, tomorrow or YYYY-MM-DD")
		out := cardsCmd.String("out", "cook-cards.pdf", "output PDF path")
		cardsCmd.Parse(os.Args[2:])

		date, err := app.ParseDay(*dateArg, time.Now().In(loc))
		if err != nil {
			log.Fatal(err)
		}
		if err := application.CookCards(ctx, date, *out); err != nil {
			log.Fatalf("Card generation failed: %v", err)
		}
	case "ingest-url":
		if len(os.Args) < 3 {
			log.Fatal("Usage: nigela ingest-url <url>")
		}
		if err := application.IngestURL(ctx, os.Args[2]); err != nil {
			log.Fatalf("URL ingestion failed: %v", err)
		}
	case "ingest-text":
		textCmd := flag.NewFlagSet("ingest-text", flag.ExitOnError)
		meal := textCmd.String("meal", "", "meal hint (breakfast, lunch, dinner, ...)")
		cuisine := textCmd.String("cuisine", "", "cuisine hint")
		file := textCmd.String("file", "", "read dish names from file instead of stdin")
		textCmd.Parse(os.Args[2:])

		raw, err := readInput(*file)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		if err := application.IngestText(ctx, raw, *meal, *cuisine); err != nil {
			log.Fatalf("Text ingestion failed: %v", err)
		}
	case "ingest-blog":
		if err := application.IngestBlog(ctx); err != nil {
			log.Fatalf("Blog ingestion failed: %v", err)
		}
	case "nutrition":
		if len(os.Args) < 3 {
			log.Fatal("Usage: nigela nutrition <dish name>")
		}
		dish, n, err := application.DishNutrition(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Nutrition lookup failed: %v", err)
		}
		fmt.Printf("%s (%s)\n", dish.Name, dish.MealType)
		fmt.Printf("  Calories: %d kcal/serving (%s)\n", n.CaloriesPerServing, n.HealthLabel())
		fmt.Printf("  Protein %.1fg | Carbs %.1fg | Fats %.1fg | Fiber %.1fg\n", n.ProteinG, n.CarbsG, n.FatsG, n.FiberG)
		fmt.Printf("  Adult daily share: %.1f%% | Kids: %.1f%%\n", n.ParentDailyPercent, n.KidsDailyPercent)
		if n.DietaryNotes != "" {
			fmt.Printf("  Notes: %s\n", n.DietaryNotes)
		}
	case "rotation":
		suggestions, err := application.RotationSuggestions(ctx)
		if err != nil {
			log.Fatalf("Rotation lookup failed: %v", err)
		}
		for _, category := range rotation.Categories() {
			fmt.Printf("%s:\n", category)
			for _, item := range suggestions[category] {
				fmt.Printf("  - %s\n", item)
			}
		}
	case "history-cleanup":
		if err := application.HistoryCleanup(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func parseDateFlag(name string, args []string, loc *time.Location) time.Time {
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	dateArg := cmd.String("date", "today", "today, tomorrow or YYYY-MM-DD")
	cmd.Parse(args)

	date, err := app.ParseDay(*dateArg, time.Now().In(loc))
	if err != nil {
		log.Fatal(err)
	}
	return date
}

func readInput(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printUsage() {
	fmt.Println("Usage: nigela <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  bootstrap          Seed the catalogue, pantry and variant notes")
	fmt.Println("  suggest            Plan a day's menu (--date today|tomorrow|YYYY-MM-DD)")
	fmt.Println("  email              Plan a day and send the menu email (--date ...)")
	fmt.Println("  cards              Plan a day and write cook-card PDF (--date ..., --out path)")
	fmt.Println("  ingest-url         Clip a recipe page into the catalogue")
	fmt.Println("  ingest-text        Parse dish names from stdin or --file (--meal, --cuisine hints)")
	fmt.Println("  ingest-blog        Pull and extract every post from the recipe blog")
	fmt.Println("  nutrition          Show the per-serving estimate for a catalogue dish")
	fmt.Println("  rotation           Show per-category items not cooked recently")
	fmt.Println("  history-cleanup    Prune rotation history and old metrics")
}
