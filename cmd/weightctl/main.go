// Command weightctl previews weight variances offline against a YAML preference profile.
//
//	weightctl preview --profile order.yaml --item bananas 2.3
//	weightctl classify --max 10 --overages-only -- -4.5
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/variance"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "weightctl",
		Short:         "Preview grocery weight variances",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("profile", "", "YAML profile with preferences and items")
	root.AddCommand(newPreviewCmd(), newClassifyCmd())
	return root
}

func newPreviewCmd() *cobra.Command {
	var itemID string
	cmd := &cobra.Command{
		Use:   "preview WEIGHT",
		Short: "Preview a candidate weight for an item of the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("weight: %w", err)
			}
			path, _ := cmd.Flags().GetString("profile")
			p, err := loadProfile(path)
			if err != nil {
				return err
			}
			prefs, err := p.preferences()
			if err != nil {
				return err
			}
			item, err := p.item(itemID)
			if err != nil {
				return err
			}
			ev, err := variance.Evaluate(item, weight, prefs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "item:       %s\n", item.ID)
			fmt.Fprintf(out, "weight:     %s %s (requested %s)\n", ev.CandidateWeight, item.WeightUnit, item.RequestedQuantity)
			fmt.Fprintf(out, "variance:   %s\n", formatPct(ev.VariancePercentage))
			fmt.Fprintf(out, "estimated:  %s\n", ev.EstimatedPrice.StringFixed(2))
			fmt.Fprintf(out, "actual:     %s\n", ev.ActualPrice.StringFixed(2))
			fmt.Fprintf(out, "outcome:    %s\n", ev.PredictedOutcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "item id from the profile")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var (
		maxPct       int
		overagesOnly bool
		manual       bool
	)
	cmd := &cobra.Command{
		Use:   "classify PERCENT",
		Short: "Classify a variance percentage under a preference profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("percent: %w", err)
			}
			path, _ := cmd.Flags().GetString("profile")
			p, err := loadProfile(path)
			if err != nil {
				return err
			}
			prefs, err := p.preferences()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max") {
				if !domain.ValidVariancePercentage(maxPct) {
					return fmt.Errorf("max %d not in %v", maxPct, domain.VariancePercentageOptions)
				}
				prefs.MaxAutoVariancePercentage = maxPct
			}
			if cmd.Flags().Changed("overages-only") {
				prefs.AutoApproveOveragesOnly = overagesOnly
			}
			if manual {
				prefs.AutoApproveVariances = false
			}
			fmt.Fprintln(cmd.OutOrStdout(), variance.Classify(&pct, prefs))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxPct, "max", 0, "auto-approval threshold in percent")
	cmd.Flags().BoolVar(&overagesOnly, "overages-only", false, "auto-approve overages only")
	cmd.Flags().BoolVar(&manual, "manual", false, "disable auto-approval")
	return cmd
}

func formatPct(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64) + "%"
}
