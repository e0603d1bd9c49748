package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkravets/payout-lens/internal/classify"
	"github.com/mkravets/payout-lens/internal/cli"
	"github.com/mkravets/payout-lens/internal/engine"
	"github.com/mkravets/payout-lens/internal/ingest"
	"github.com/mkravets/payout-lens/internal/resolver"
)

func analyzeCmd() *cobra.Command {
	var (
		policy     string
		taxRate    float64
		topN       int
		noClassify bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Compute the financial summary for a payout report",
		Long: `Analyze ingests an xlsx or delimited payout report, resolves its column
layout, classifies operation types, and prints revenue, tax, cost and
profit with a per-product breakdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			table, err := ingest.Load(args[0], ingest.Options{
				MaxRows: viper.GetInt("ingest.max_rows"),
			})
			if err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			client, err := initLLMClient()
			if err != nil {
				return fmt.Errorf("failed to initialize LLM client: %w", err)
			}
			if noClassify {
				client = nil
			}
			if client == nil {
				logger.Info("classification capability disabled, unknown labels default to other")
			}

			classifier := classify.New(store, client, logger, classify.Config{
				Timeout: classifyTimeout(),
			})

			var bar *progressbar.ProgressBar
			classifier.OnBatch = func(done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("classifying operations"),
						progressbar.OptionClearOnFinish())
				}
				_ = bar.Set(done)
			}

			eng := engine.New(store, resolver.New(client, logger), classifier, logger)

			if !cmd.Flags().Changed("tax-rate") {
				taxRate = viper.GetFloat64("tax.rate")
			}
			if !cmd.Flags().Changed("top") {
				topN = viper.GetInt("report.top_n")
			}

			rep, err := eng.Analyze(ctx, table, engine.Options{
				Owner:   viper.GetString("owner"),
				TaxRate: taxRate,
				Policy:  engine.Policy(policy),
				TopN:    topN,
			})
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderReport(rep, taxRate))
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", string(engine.PolicyProportional), "allocation policy (proportional, ledger)")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0.06, "tax rate applied to revenue under the proportional policy")
	cmd.Flags().IntVar(&topN, "top", 5, "ranking size")
	cmd.Flags().BoolVar(&noClassify, "no-classify", false, "skip external classification; unknown labels count as other")

	return cmd
}
