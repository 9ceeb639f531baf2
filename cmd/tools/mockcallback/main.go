package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type metadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

type stkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  *struct {
		Item []metadataItem `json:"Item"`
	} `json:"CallbackMetadata,omitempty"`
}

type callbackPayload struct {
	Body struct {
		STKCallback stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

// Sends a synthetic Daraja STK callback to a running server. Useful for
// exercising the reconciler without the sandbox.
func main() {
	url := flag.String("url", "http://localhost:8080/payments/callback", "Callback URL")
	merchantID := flag.String("merchant-id", "29115-34620561-1", "MerchantRequestID")
	checkoutID := flag.String("checkout-id", "ws_CO_"+time.Now().Format("020120061504"), "CheckoutRequestID")
	resultCode := flag.Int("result-code", 0, "ResultCode (0 = success)")
	amount := flag.Float64("amount", 150, "Settled amount (success only)")
	receipt := flag.String("receipt", "NLJ7RT61SV", "MpesaReceiptNumber (success only)")
	phone := flag.Int64("phone", 254708374149, "Payer phone number")
	dryRun := flag.Bool("dry-run", false, "Only print the payload, don't send")

	flag.Parse()

	var payload callbackPayload
	cb := stkCallback{
		MerchantRequestID: *merchantID,
		CheckoutRequestID: *checkoutID,
		ResultCode:        *resultCode,
	}
	if *resultCode == 0 {
		cb.ResultDesc = "The service request is processed successfully."
		cb.CallbackMetadata = &struct {
			Item []metadataItem `json:"Item"`
		}{
			Item: []metadataItem{
				{Name: "Amount", Value: *amount},
				{Name: "MpesaReceiptNumber", Value: *receipt},
				{Name: "TransactionDate", Value: time.Now().Format("20060102150405")},
				{Name: "PhoneNumber", Value: *phone},
			},
		}
	} else {
		cb.ResultDesc = "Request cancelled by user."
	}
	payload.Body.STKCallback = cb

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	resp, err := http.Post(*url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
