package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"MerchantReports/api/merchant"
	"MerchantReports/internal/model"
	"MerchantReports/internal/store"
	"MerchantReports/internal/validation"
)

type generateOptions struct {
	panel    string
	file     string
	from     string
	to       string
	percents []string
	out      string
}

func newGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a report workbook from a spreadsheet without running the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), opts, time.Now)
		},
	}

	cmd.Flags().StringVar(&opts.panel, "type", "", "panel type: Deposit or Withdrawal (required)")
	cmd.Flags().StringVar(&opts.file, "file", "", "input .xlsx, .xls or .csv file (required)")
	cmd.Flags().StringVar(&opts.from, "from", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date, YYYY-MM-DD (required)")
	cmd.Flags().StringArrayVar(&opts.percents, "percent", nil, "merchant percent as Merchant=10, repeatable")
	cmd.Flags().StringVar(&opts.out, "out", "./output", "output directory")
	for _, name := range []string{"type", "file", "from", "to"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// parsePercentFlags keeps flag order; a repeated merchant keeps its first
// position and takes the last value.
func parsePercentFlags(values []string) (model.Percents, error) {
	out := model.Percents{}
	index := make(map[string]int)
	for _, v := range values {
		name, pct, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --percent %q: expected Merchant=value", v)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return nil, fmt.Errorf("invalid --percent %q: %w", v, err)
		}
		if i, seen := index[name]; seen {
			out[i].Percent = d
			continue
		}
		index[name] = len(out)
		out = append(out, model.MerchantPercent{Merchant: name, Percent: d})
	}
	return out, nil
}

func runGenerate(w io.Writer, opts generateOptions, now func() time.Time) error {
	percents, err := parsePercentFlags(opts.percents)
	if err != nil {
		return err
	}
	in, err := validation.GenerateRequest{
		Type:             opts.panel,
		MerchantPercents: percents,
		StartDate:        opts.from,
		EndDate:          opts.to,
	}.Validate("")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	ds, err := merchant.Ingest(in.Panel, opts.file, data)
	if err != nil {
		return err
	}

	st := store.New()
	st.PutDataset(ds)
	report, err := merchant.Generate(&merchant.Env{Store: st, OutputDir: opts.out, Now: now}, in)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Merchant\tTotal Amount\tTotal Fees\tPercent Amount")
	for _, r := range report.Summary {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Merchant, r.TotalAmount.StringFixed(2), r.TotalFees.StringFixed(2), r.PercentAmount.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", filepath.Join(opts.out, report.FileName))
	return nil
}
