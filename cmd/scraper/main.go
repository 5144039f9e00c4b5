package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-simplify-harvest/internal/browser"
	"go-simplify-harvest/internal/config"
	"go-simplify-harvest/internal/crawler"
	"go-simplify-harvest/internal/database"
	"go-simplify-harvest/internal/extract"
	"go-simplify-harvest/internal/session"
	"go-simplify-harvest/internal/telegram"
	"go-simplify-harvest/utils"
)

func main() {
	//load config
	cfg := config.Load()
	cfg.RequireLogin()
	log.Println("🔧 Config loaded.")

	//no run-time cap: the crawl ends when the listing does, Ctrl-C ends it early
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Println("🚀 Starting Simplify harvest, connecting to database...")
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("❌ Failed to migrate schema: %v", err)
	}

	//init telegram bot if configured
	var bot *telegram.Bot
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err = telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram notifications disabled: %v", err)
			bot = nil
		} else {
			log.Println("🤖 Telegram notifications enabled.")
		}
	}

	//init playwright manager
	pwManager, err := browser.NewPlaywright(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//restore session cookies from a previous run if there are any
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-simplify.json")
	cookies, err := browser.LoadCookies(cookieFile)
	if err != nil {
		log.Printf("🍪 No saved session cookies (%v), logging in fresh.", err)
	} else {
		log.Printf("🍪 Loaded %d saved cookies", len(cookies))
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	loginPage := browser.NewSimplifyLoginPage(page, cfg.LoginURL)
	if len(cookies) > 0 && loginPage.SessionActive(ctx, cfg.FilterURL) {
		log.Println("🍪 Restored session is still authenticated, skipping login.")
	} else {
		prompt := &challengePrompt{
			inner: session.NewConsolePrompt(os.Stdin),
			bot:   bot,
		}
		controller := session.NewController(loginPage, prompt)
		if err := controller.Establish(ctx, cfg.SimplifyEmail, cfg.SimplifyPassword); err != nil {
			log.Fatalf("❌ Login failed: %v", err)
		}

		if saved, err := browserCtx.Cookies(); err == nil {
			if err := browser.SaveCookies(cookieFile, saved); err != nil {
				log.Printf("⚠️ Failed to save session cookies: %v", err)
			}
		}
	}

	//run the crawl
	view := crawler.NewPlaywrightView(page, cfg.FilterURL)
	driver := crawler.NewDriver(view, repo)
	if err := driver.Run(ctx); err != nil {
		var structural *extract.StructuralError
		if errors.As(err, &structural) {
			if path, serr := utils.CaptureFailure(page, "layout-regression"); serr == nil {
				log.Printf("📸 Screenshot saved: %s", path)
			}
			notify(bot, fmt.Sprintf("Crawl aborted, listing layout changed: %v", structural))
			log.Fatalf("❌ Listing layout no longer matches selectors: %v", structural)
		}
		log.Fatalf("❌ Crawl failed: %v", err)
	}

	summary := fmt.Sprintf("Finished collecting jobs: %d inserted, %d already known.",
		driver.Inserted(), driver.Duplicates())
	log.Printf("🏁 %s", summary)
	notify(bot, summary)
}

func notify(bot *telegram.Bot, message string) {
	if bot == nil {
		return
	}
	if err := bot.SendStatus(message); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

// challengePrompt pings Telegram before parking on the console wait, so
// the operator learns about a CAPTCHA without watching the terminal.
type challengePrompt struct {
	inner session.Prompt
	bot   *telegram.Bot
}

func (p *challengePrompt) AwaitResolution(ctx context.Context) error {
	if p.bot != nil {
		if err := p.bot.SendChallengeAlert(); err != nil {
			log.Printf("⚠️ Failed to send challenge alert: %v", err)
		}
	}
	return p.inner.AwaitResolution(ctx)
}
