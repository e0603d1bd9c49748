package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkravets/payout-lens/internal/model"
)

func opsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "Inspect and override the operation-label mapping",
	}

	cmd.AddCommand(opsListCmd())
	cmd.AddCommand(opsSetCmd())

	return cmd
}

func opsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show known operation labels and their classes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ops, err := store.GetOpsMap(ctx, viper.GetString("owner"))
			if err != nil {
				return fmt.Errorf("failed to load operation mapping: %w", err)
			}

			if len(ops) == 0 {
				fmt.Println("no operation labels known yet")
				return nil
			}

			labels := make([]string, 0, len(ops))
			for label := range ops {
				labels = append(labels, label)
			}
			sort.Strings(labels)
			for _, label := range labels {
				fmt.Printf("%-10s %s\n", ops[label], label)
			}
			return nil
		},
	}
}

func opsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <label> <class>",
		Short: "Override the class for an operation label",
		Long:  `Class must be one of: sale, return, other.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := model.ParseOperationClass(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			owner := viper.GetString("owner")
			if err := store.SetOperation(ctx, owner, args[0], class); err != nil {
				return fmt.Errorf("failed to save operation label: %w", err)
			}

			fmt.Printf("%q classified as %s\n", args[0], class)
			return nil
		},
	}
}
