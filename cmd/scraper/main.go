package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-empleo-scraper/internal/config"
	"go-empleo-scraper/internal/database"
	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/reporter"
	"go-empleo-scraper/internal/scrape"
)

func main() {
	keyword := flag.String("keyword", "", "search keyword, e.g. 'desarrollador backend'")
	countriesFlag := flag.String("countries", "co", "comma-separated country codes, e.g. co,mx")
	dryRun := flag.Bool("dry-run", false, "scrape and normalize without persisting")
	flag.Parse()

	if *keyword == "" {
		log.Fatal("❌ -keyword is required")
	}
	countries := strings.Split(*countriesFlag, ",")
	for i := range countries {
		countries[i] = strings.ToLower(strings.TrimSpace(countries[i]))
	}

	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Browser: %q", cfg.BrowserPath)

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	//connect database unless dry run
	var store scrape.JobStore
	if !*dryRun {
		if cfg.DatabaseURL == "" {
			log.Fatal("❌ DATABASE_URL is required (or pass -dry-run)")
		}
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("❌ Failed to ensure schema: %v", err)
		}
		store = repo
		log.Println("🗄️ Database connected.")
	}

	//optional telegram summary
	var rep scrape.Reporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporter disabled: %v", err)
		} else {
			rep = tg
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	//build fetch strategies
	static := fetch.NewStatic(cfg.UserAgent, cfg.StaticTimeout, cfg.PoliteDelay)
	rendered := fetch.NewRendered(cfg.BrowserPath, cfg.UserAgent, cfg.RenderTimeout, cfg.SettleDelay)

	log.Printf("🚀 Starting scrape: %q in %v", *keyword, countries)

	service := scrape.New(scrape.DefaultAdapters(), static, rendered, store, rep)
	jobs := service.PerformScraping(ctx, *keyword, countries)

	log.Printf("📦 Total jobs collected: %d", len(jobs))

	//save results
	saveJobs(jobs)

	log.Println("🏁 Execution finished.")
}

func saveJobs(jobs []models.CanonicalJob) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	//create logs directory if not exists
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(logDir, filename)

	data, err := json.MarshalIndent(jobs, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write logs file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
