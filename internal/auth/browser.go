package auth

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserManager handles Chrome browser automation
type BrowserManager struct {
	headless bool
}

// NewBrowserManager creates a new BrowserManager instance
func NewBrowserManager(headless bool) *BrowserManager {
	return &BrowserManager{headless: headless}
}

// CreateBrowserContext creates and configures a Chrome browser context
func (bm *BrowserManager) CreateBrowserContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", bm.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Enable network events
	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		cancel()
		browserCancel()
		return nil, nil, fmt.Errorf("failed to enable network events: %v", err)
	}

	// Return a combined cancel function
	combinedCancel := func() {
		browserCancel()
		cancel()
	}

	return browserCtx, combinedCancel, nil
}
