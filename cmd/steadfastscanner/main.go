package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"SteadfastScanner/internal/app"
	"SteadfastScanner/internal/config"
	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/infrastructure/parser"
	"SteadfastScanner/internal/logging"
)

var (
	flagCookie    string
	flagStartDate string
	flagEndDate   string
	flagStatus    string
	flagNoInput   bool
)

var rootCmd = &cobra.Command{
	Use:   "steadfastscanner",
	Short: "Exports consignment records from the Steadfast portal to a spreadsheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := logging.New(cfg.Logging.Level)

		raw := domain.RawRequest{
			Cookie:    flagCookie,
			StartDate: flagStartDate,
			EndDate:   flagEndDate,
			Status:    flagStatus,
		}
		if raw.Cookie == "" {
			raw.Cookie = cfg.Portal.Cookie
		}
		if !flagNoInput {
			promptMissing(&raw)
		}

		application, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Run(cmd.Context(), raw)
		if err != nil {
			return err
		}

		renderResult(result.Records)
		fmt.Printf("%d consignment(s) between %s and %s\n",
			len(result.Records),
			result.Request.EndDate.Format("2006-01-02"),
			result.Request.StartDate.Format("2006-01-02"),
		)
		if result.ReportPath != "" {
			fmt.Printf("report written to %s\n", result.ReportPath)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagCookie, "cookie", "", "portal session cookie (falls back to the cached one)")
	rootCmd.Flags().StringVar(&flagStartDate, "start-date", "", "newer bound of the window, YYYY-MM-DD (default: today)")
	rootCmd.Flags().StringVar(&flagEndDate, "end-date", "", "older bound of the window, YYYY-MM-DD (default: start minus 7 days)")
	rootCmd.Flags().StringVar(&flagStatus, "status", "", "status category label (default: All)")
	rootCmd.Flags().BoolVar(&flagNoInput, "no-input", false, "never prompt; use flags, config and cache only")
}

// promptMissing asks on stdin for any value not already supplied by flags or
// config, mirroring the portal's listing inputs. Empty answers keep the
// validator's defaulting rules in charge.
func promptMissing(raw *domain.RawRequest) {
	reader := bufio.NewReader(os.Stdin)

	raw.Cookie = prompt(reader, "Enter Cookie", raw.Cookie)
	raw.StartDate = prompt(reader, "Start Date", raw.StartDate)
	raw.EndDate = prompt(reader, "End Date", raw.EndDate)
	raw.Status = prompt(reader, "Status", raw.Status)
}

func prompt(reader *bufio.Reader, label, current string) string {
	if current != "" {
		return current
	}

	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func renderResult(records []domain.Consignment) {
	if len(records) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Id", "Customer Name", "Payment", "Charge", "Status"})

	for _, record := range records {
		t.AppendRow(table.Row{
			record.ReceivedAt.Format(parser.ReceivedAtLayout),
			record.TrackingID,
			record.CustomerName,
			record.Payment,
			record.Charge,
			record.StatusLabel,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
