package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iho/atmledger/internal/adapter/http/dto"
)

type options struct {
	baseURL string
	timeout time.Duration
	rawJSON bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "atm",
		Short:        "ATM ledger CLI",
		Long:         `A command line interface for the ATM ledger API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the ATM ledger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.rawJSON, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		accountCmd(opts),
		transferCmd(opts, "deposit", "Move cash into the balance"),
		transferCmd(opts, "withdraw", "Move balance out as cash"),
		historyCmd(opts),
		resetCmd(opts),
		quickCmd(opts),
		ledgerCmd(opts),
	)

	return rootCmd
}

func accountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show cash, balance and total assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/account", nil, &account); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), account, func(w io.Writer) {
				printAccount(w, account)
			})
		},
	}
}

func transferCmd(opts *options, kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"amount": amountPayload(args[0])}

			var result dto.TransactionResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/account/"+kind, body, &result); err != nil {
				return err
			}
			if result.Account == nil || result.Record == nil {
				return fmt.Errorf("unexpected %s response: missing record or account", kind)
			}
			return opts.print(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintln(w, result.Message)
				printAccount(w, *result.Account)
			})
		},
	}
}

func historyCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/account/history"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var history dto.HistoryResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, &history); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), history, func(w io.Writer) {
				printHistory(w, history)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N records")

	return cmd
}

func resetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/account/reset", nil, &account); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), account, func(w io.Writer) {
				fmt.Fprintln(w, "Account reset.")
				printAccount(w, account)
			})
		},
	}
}

func quickCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Show the preset amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var quick dto.QuickAmountsResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/account/quick-amounts", nil, &quick); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), quick, func(w io.Writer) {
				fmt.Fprintln(w, strings.Join(quick.Displays, "  "))
				if quick.TransactionLimit > 0 {
					fmt.Fprintf(w, "Limit per transaction: %s\n", humanize.Comma(quick.TransactionLimit))
				}
			})
		},
	}
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ConsistencyResponse
			err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, &report)

			var apiErr *apiError
			switch {
			case errors.As(err, &apiErr) && apiErr.status == http.StatusConflict:
				// The 409 body is the report itself.
				if jsonErr := json.Unmarshal(apiErr.body, &report); jsonErr != nil {
					return err
				}
			case err != nil:
				return err
			}

			if printErr := opts.print(cmd.OutOrStdout(), report, func(w io.Writer) {
				printConsistency(w, report)
			}); printErr != nil {
				return printErr
			}
			if !report.Consistent {
				return errors.New("ledger is inconsistent")
			}
			return nil
		},
	})

	return cmd
}

func (o *options) client() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(o.baseURL, "/"),
		http:    &http.Client{Timeout: o.timeout},
	}
}

func (o *options) print(w io.Writer, v any, human func(io.Writer)) error {
	if o.rawJSON {
		return printJSON(w, v)
	}
	human(w)
	return nil
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

// apiError carries a non-2xx response. Its message is the API's user-facing text.
type apiError struct {
	status  int
	code    string
	message string
	body    []byte
}

func (e *apiError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.code != "" {
		return fmt.Sprintf("%s (status %d)", e.code, e.status)
	}
	return fmt.Sprintf("request failed with status %d", e.status)
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var errResp dto.ErrorResponse
	decoded := json.Unmarshal(data, &errResp) == nil

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{status: resp.StatusCode, body: data}
		if decoded {
			apiErr.code = errResp.Code
			apiErr.message = errResp.Message
		}
		return apiErr
	}

	// A success status carrying an error body is still an error.
	if decoded && errResp.Code != "" {
		return &apiError{status: resp.StatusCode, code: errResp.Code, message: errResp.Message, body: data}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// amountPayload passes numeric input through as a JSON number and anything
// else as a string, leaving validation to the API.
func amountPayload(arg string) any {
	cleaned := strings.ReplaceAll(strings.TrimSpace(arg), ",", "")
	if _, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return json.Number(cleaned)
	}
	return arg
}

func printAccount(w io.Writer, a dto.AccountResponse) {
	fmt.Fprintf(w, "Name:         %s\n", a.Name)
	fmt.Fprintf(w, "Cash:         %s\n", a.CashDisplay)
	fmt.Fprintf(w, "Balance:      %s\n", a.BalanceDisplay)
	fmt.Fprintf(w, "Total assets: %s\n", a.TotalAssetsDisplay)
}

func printHistory(w io.Writer, h dto.HistoryResponse) {
	if h.Count == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}
	for _, r := range h.Records {
		fmt.Fprintf(w, "%s  %-8s  %12s  balance %s\n",
			r.Timestamp, r.Kind, humanize.Comma(r.Amount), humanize.Comma(r.BalanceAfter))
	}
}

func printConsistency(w io.Writer, r dto.ConsistencyResponse) {
	if r.Consistent {
		fmt.Fprintf(w, "Consistency check PASSED (%d records replayed)\n", r.RecordsReplayed)
		return
	}

	fmt.Fprintf(w, "Consistency check FAILED (%d records replayed)\n", r.RecordsReplayed)
	for _, p := range r.Problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
