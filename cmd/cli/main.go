package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eligibility-cli",
		Short: "Savings eligibility CLI tool",
		Long:  `A command line interface for the savings transaction eligibility service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the eligibility service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token for authenticated deployments")

	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(decisionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func evaluateCmd() *cobra.Command {
	var (
		kind     string
		source   string
		dest     string
		amount   string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a proposed transaction",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"kind":                  kind,
				"source_account_number": source,
				"amount":                amount,
			}
			if dest != "" {
				payload["destination_account_number"] = dest
			}
			if currency != "" {
				payload["currency"] = currency
			}

			result := postJSON("/api/v1/eligibility/evaluate", payload)

			if eligible, ok := result["eligible"].(bool); ok && !eligible {
				fmt.Printf("REJECTED: %s\n", result["reason"])
				if msg, ok := result["message"].(string); ok && msg != "" {
					fmt.Printf("  %s\n", msg)
				}
				return
			}
			fmt.Println("ELIGIBLE")
			if id, ok := result["decision_id"].(string); ok && id != "" {
				fmt.Printf("Decision ID: %s\n", id)
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Transaction kind (Deposit, Withdrawal, Transfer, OpeningDeposit)")
	cmd.Flags().StringVar(&source, "source", "", "Source account number (12 digits)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination account number (transfers only)")
	cmd.Flags().StringVar(&amount, "amount", "", "Transaction amount")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency (HTG or USD)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	getCmd := &cobra.Command{
		Use:   "get [account-number]",
		Short: "Fetch an account snapshot from the core banking service",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printJSON(getJSON("/api/v1/accounts/" + args[0]))
		},
	}

	cmd.AddCommand(getCmd)
	return cmd
}

func decisionsCmd() *cobra.Command {
	var (
		account      string
		kind         string
		rejectedOnly bool
		limit        int
		offset       int
	)

	cmd := &cobra.Command{
		Use:   "decisions",
		Short: "Decision log operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded eligibility decisions",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if account != "" {
				q.Set("account_number", account)
			}
			if kind != "" {
				q.Set("kind", kind)
			}
			if rejectedOnly {
				q.Set("rejected_only", "true")
			}
			if limit > 0 {
				q.Set("limit", fmt.Sprintf("%d", limit))
			}
			if offset > 0 {
				q.Set("offset", fmt.Sprintf("%d", offset))
			}

			path := "/api/v1/decisions"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			printJSON(getJSON(path))
		},
	}

	listCmd.Flags().StringVar(&account, "account", "", "Filter by account number")
	listCmd.Flags().StringVar(&kind, "kind", "", "Filter by transaction kind")
	listCmd.Flags().BoolVar(&rejectedOnly, "rejected-only", false, "Only rejected decisions")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Max results (default 20, cap 100)")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")

	getCmd := &cobra.Command{
		Use:   "get [decision-id]",
		Short: "Fetch a single decision by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printJSON(getJSON("/api/v1/decisions/" + args[0]))
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(getCmd)
	return cmd
}

func getJSON(path string) map[string]any {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	return doRequest(req)
}

func postJSON(path string, payload map[string]any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(req)
}

func doRequest(req *http.Request) map[string]any {
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	return result
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
