package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-mall-service/config"
	"github.com/fekuna/omnipos-mall-service/internal/analytics/client"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	var (
		baseURL    string
		merchantID string
		asJSON     bool
	)
	flag.StringVar(&baseURL, "url", cfg.Analytics.BaseURL, "mall service base url")
	flag.StringVar(&merchantID, "merchant", os.Getenv("MERCHANT_ID"), "merchant id sent as X-Merchant-ID")
	flag.BoolVar(&asJSON, "json", false, "print raw json")
	flag.Parse()

	panel := client.NewPanel(client.New(client.Config{
		BaseURL:    baseURL,
		MerchantID: merchantID,
		Timeout:    cfg.Analytics.RequestTimeout,
	}))

	st := panel.Refresh(context.Background())
	if st.Status == client.StatusFailed {
		fmt.Fprintf(os.Stderr, "fetch distinct bap counts: %v\n", st.Err)
		os.Exit(1)
	}

	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(st.Counts)
		return
	}
	fmt.Printf("Distinct buyer apps\n")
	fmt.Printf("  last month: %d\n", st.Counts.LastMonth)
	fmt.Printf("  last week:  %d\n", st.Counts.LastWeek)
	fmt.Printf("  last day:   %d\n", st.Counts.LastDay)
}
