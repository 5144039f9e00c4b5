package main

import (
	"context"
	"fmt"
	"log"

	"go-simplify-harvest/internal/browser"
)

// Manual smoke check: launch the browser, restore saved cookies if any,
// open the jobs listing and leave a screenshot behind.
func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	ctx := context.Background()

	pm, err := browser.NewPlaywright(ctx)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	cookies, err := browser.LoadCookies(".cookies/cookies-simplify.json")
	if err != nil {
		log.Printf("No saved cookies: %v. Continuing without.", err)
	} else {
		fmt.Printf("✅ Loaded %d cookies\n", len(cookies))
	}

	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	fmt.Println("🔍 Navigating to Simplify jobs...")
	if _, err := page.Goto("https://simplify.jobs/jobs?experience=Internship"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)

	loginPage := browser.NewSimplifyLoginPage(page, "https://simplify.jobs/auth/login")
	if loginPage.SessionActive(ctx, "https://simplify.jobs/jobs?experience=Internship") {
		fmt.Println("✅ Session is authenticated")
	} else {
		fmt.Println("ℹ️ Not logged in")
	}

	fmt.Println("✨ Test complete!")
}
