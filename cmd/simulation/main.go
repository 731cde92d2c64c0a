package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Concurrent coupon-redemption exercise against a running instance. Fires N
// simultaneous validations of the same limited coupon and reports how many
// got the discount versus how many were rejected at the limit.

var (
	baseURL     = flag.String("base-url", "http://localhost:3000/api", "API base URL")
	accessToken = flag.String("token", "", "bearer token of the test user")
	couponCode  = flag.String("coupon", "PERCENT10", "coupon code to contend for")
	itemType    = flag.String("item-type", "course", "item type to order")
	itemId      = flag.String("item-id", "", "item id to order")
	workers     = flag.Int("workers", 20, "number of concurrent attempts")
)

type validateCouponRequest struct {
	Code     string `json:"code"`
	ItemType string `json:"item_type"`
	ItemId   string `json:"item_id"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Reason  string          `json:"reason,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type attemptResult struct {
	worker int
	status int
	reason string
	err    error
}

func main() {
	flag.Parse()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println("=== Coupon Contention Simulation ===")
	fmt.Printf("Coupon: %s | Item: %s/%s | Workers: %d\n\n", *couponCode, *itemType, *itemId, *workers)

	if *accessToken == "" || *itemId == "" {
		fmt.Println(red("-token and -item-id are required"))
		return
	}

	var wg sync.WaitGroup
	results := make(chan attemptResult, *workers)

	start := time.Now()
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			status, reason, err := validateCoupon()
			results <- attemptResult{worker: n, status: status, reason: reason, err: err}
		}(i)
	}
	wg.Wait()
	close(results)

	accepted, denied, failed := 0, 0, 0
	for r := range results {
		switch {
		case r.err != nil:
			failed++
			fmt.Printf("%s worker %02d: %v\n", red("ERR "), r.worker, r.err)
		case r.status == http.StatusOK:
			accepted++
			fmt.Printf("%s worker %02d: coupon accepted\n", green("OK  "), r.worker)
		default:
			denied++
			fmt.Printf("%s worker %02d: %d %s\n", yellow("DENY"), r.worker, r.status, r.reason)
		}
	}

	fmt.Printf("\nDone in %v: %s accepted, %s denied, %s failed\n",
		time.Since(start), green(accepted), yellow(denied), red(failed))
}

func validateCoupon() (int, string, error) {
	payload := validateCouponRequest{
		Code:     *couponCode,
		ItemType: *itemType,
		ItemId:   *itemId,
	}
	jsonBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", *baseURL+"/coupons/validate", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Authorization", "Bearer "+*accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var env apiEnvelope
	_ = json.Unmarshal(body, &env)

	return resp.StatusCode, env.Reason, nil
}
