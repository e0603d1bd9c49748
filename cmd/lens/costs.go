package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func costsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Manage the per-owner cost catalog",
	}

	cmd.AddCommand(costsListCmd())
	cmd.AddCommand(costsSetCmd())
	cmd.AddCommand(costsDefaultCmd())

	return cmd
}

func costsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cost catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			catalog, err := store.GetCostCatalog(ctx, viper.GetString("owner"))
			if err != nil {
				return fmt.Errorf("failed to load cost catalog: %w", err)
			}

			fmt.Printf("default cost: %.2f\n", catalog.DefaultCost)

			codes := make([]string, 0, len(catalog.PerEntity))
			for code := range catalog.PerEntity {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			for _, code := range codes {
				fmt.Printf("%s: %.2f\n", code, catalog.PerEntity[code])
			}
			return nil
		},
	}
}

func costsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <code> <cost>",
		Short: "Set the unit cost for a product code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", args[1], err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			owner := viper.GetString("owner")
			catalog, err := store.GetCostCatalog(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to load cost catalog: %w", err)
			}

			catalog.PerEntity[args[0]] = cost
			if err := store.SaveCostCatalog(ctx, owner, catalog); err != nil {
				return fmt.Errorf("failed to save cost catalog: %w", err)
			}

			fmt.Printf("cost for %s set to %.2f\n", args[0], cost)
			return nil
		},
	}
}

func costsDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <cost>",
		Short: "Set the fallback unit cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			owner := viper.GetString("owner")
			catalog, err := store.GetCostCatalog(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to load cost catalog: %w", err)
			}

			catalog.DefaultCost = cost
			if err := store.SaveCostCatalog(ctx, owner, catalog); err != nil {
				return fmt.Errorf("failed to save cost catalog: %w", err)
			}

			fmt.Printf("default cost set to %.2f\n", cost)
			return nil
		},
	}
}
