package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankcore-cli",
		Short: "BankCore CLI tool",
		Long:  `A command line interface for interacting with the BankCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCommand())
	rootCmd.AddCommand(operationCommand())
	rootCmd.AddCommand(loanCommand())
	rootCmd.AddCommand(statementCommand())
	rootCmd.AddCommand(ledgerCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts", map[string]any{"user_id": userID})
		},
	}
	openCmd.Flags().StringVar(&userID, "user", "", "User ID owning the account")
	openCmd.MarkFlagRequired("user")

	getCmd := &cobra.Command{
		Use:   "get [account-no]",
		Short: "Get an account by number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	}

	accountCmd.AddCommand(openCmd, getCmd, listCmd)

	return accountCmd
}

func operationCommand() *cobra.Command {
	opCmd := &cobra.Command{
		Use:   "op",
		Short: "Balance operations",
	}

	var amount string

	depositCmd := &cobra.Command{
		Use:   "deposit [account-no]",
		Short: "Deposit into an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/deposit", map[string]any{"amount": amount})
		},
	}
	depositCmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	depositCmd.MarkFlagRequired("amount")

	var withdrawAmount string
	withdrawCmd := &cobra.Command{
		Use:   "withdraw [account-no]",
		Short: "Withdraw from an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/withdraw", map[string]any{"amount": withdrawAmount})
		},
	}
	withdrawCmd.Flags().StringVar(&withdrawAmount, "amount", "", "Amount to withdraw")
	withdrawCmd.MarkFlagRequired("amount")

	var from, to int64
	var transferAmount string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]any{
				"from_account_no": from,
				"to_account_no":   to,
				"amount":          transferAmount,
			})
		},
	}
	transferCmd.Flags().Int64Var(&from, "from", 0, "Sender account number")
	transferCmd.Flags().Int64Var(&to, "to", 0, "Recipient account number")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "Amount to transfer")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")

	opCmd.AddCommand(depositCmd, withdrawCmd, transferCmd)

	return opCmd
}

func loanCommand() *cobra.Command {
	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan lifecycle operations",
	}

	var amount string
	requestCmd := &cobra.Command{
		Use:   "request [account-no]",
		Short: "Request a loan for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/loans", map[string]any{"amount": amount})
		},
	}
	requestCmd.Flags().StringVar(&amount, "amount", "", "Loan amount")
	requestCmd.MarkFlagRequired("amount")

	approveCmd := &cobra.Command{
		Use:   "approve [entry-id]",
		Short: "Approve a pending loan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/loans/"+args[0]+"/approve", nil)
		},
	}

	payCmd := &cobra.Command{
		Use:   "pay [entry-id]",
		Short: "Repay an approved loan in full",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/loans/"+args[0]+"/pay", nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [account-no]",
		Short: "List an account's open loans",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/loans")
		},
	}

	loanCmd.AddCommand(requestCmd, approveCmd, payCmd, listCmd)

	return loanCmd
}

func statementCommand() *cobra.Command {
	var startDate, endDate string

	statementCmd := &cobra.Command{
		Use:   "statement [account-no]",
		Short: "Print an account statement",
		Long:  `Prints an account statement. The date range applies only when both --start and --end are given.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/accounts/" + args[0] + "/statement"
			if startDate != "" || endDate != "" {
				path += fmt.Sprintf("?start_date=%s&end_date=%s", startDate, endDate)
			}
			getJSON(path)
		},
	}
	statementCmd.Flags().StringVar(&startDate, "start", "", "Range start (YYYY-MM-DD)")
	statementCmd.Flags().StringVar(&endDate, "end", "", "Range end (YYYY-MM-DD), inclusive")

	return statementCmd
}

func ledgerCommand() *cobra.Command {
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

	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-no]",
		Short: "Reconcile one account, or all accounts when omitted",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				getJSON("/api/v1/accounts/" + args[0] + "/reconciliation")
				return
			}
			getJSON("/api/v1/ledger/reconciliation")
		},
	}

	ledgerCmd.AddCommand(consistencyCmd, reconcileCmd)

	return ledgerCmd
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

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Status: %s\n", result["status"])
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
