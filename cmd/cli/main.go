package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "restbank-cli",
		Short: "RestBank CLI tool",
		Long:  `A command line interface for interacting with the RestBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the RestBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	createAccountCmd := &cobra.Command{
		Use:   "create [first-name] [last-name]",
		Short: "Open a new account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			createAccount(args[0], args[1])
		},
	}

	getAccountCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAccount(args[0])
		},
	}

	statementCmd := &cobra.Command{
		Use:   "statement [id]",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			accountStatement(args[0])
		},
	}

	accountCmd.AddCommand(createAccountCmd, getAccountCmd, statementCmd)
	rootCmd.AddCommand(accountCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// formatAmount renders a minor-unit amount as a decimal money string.
func formatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func createAccount(firstName, lastName string) {
	payload, _ := json.Marshal(map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/accounts", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Account creation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account created\n")
	fmt.Printf("ID:      %v\n", result["id"])
	fmt.Printf("Number:  %v\n", result["accountNumber"])
	fmt.Printf("Owner:   %v %v\n", result["firstName"], result["lastName"])
}

func getAccount(id string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + id)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Account lookup FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ID:      %v\n", result["id"])
	fmt.Printf("Number:  %v\n", result["accountNumber"])
	fmt.Printf("Owner:   %v %v\n", result["firstName"], result["lastName"])
	if balance, ok := result["balance"].(float64); ok {
		fmt.Printf("Balance: %s\n", formatAmount(int64(balance)))
	}
}

func accountStatement(id string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + id + "/transactions")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Statement lookup FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No transactions")
		return
	}

	for _, t := range records {
		amount, _ := t["amount"].(float64)
		balance, _ := t["balance"].(float64)
		fmt.Printf("#%v  %v  amount %s  balance %s\n",
			t["id"], t["transactionType"], formatAmount(int64(amount)), formatAmount(int64(balance)))
	}
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
	} else {
		fmt.Println("Consistency check FAILED")
	}
	fmt.Printf("Accounts:      %v\n", result["accounts"])
	fmt.Printf("Transactions:  %v\n", result["transactions"])
	if total, ok := result["totalBalance"].(float64); ok {
		fmt.Printf("Total balance: %s\n", formatAmount(int64(total)))
	}
}
