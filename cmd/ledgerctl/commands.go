package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/services"
)

func parseAmount(arg string) (float64, error) {
	d, err := decimal.NewFromString(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	return d.InexactFloat64(), nil
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "words <amount>",
		Short:   "Spell an amount in riyals and halalas",
		Example: "  ledgerctl words 1500.50",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			words, err := ledger.AmountInWords(amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), words)
			return nil
		},
	}
}

func newCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "currency <amount>",
		Short:   "Format an amount with the riyal sign and thousands separators",
		Example: "  ledgerctl currency 1234.5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ledger.FormatCurrency(amount))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one collection as CSV or XLSX",
		Example: `  ledgerctl export --collection invoices --format xlsx
  ledgerctl export --collection expenses --out expenses.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, _ := cmd.Flags().GetString("collection")
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			if !models.IsCollection(collection) {
				return fmt.Errorf("unknown collection %q (expected one of %v)", collection, models.Collections())
			}

			svcs, closeStore, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			file, err := svcs.Export.Export(cmd.Context(), collection, format)
			if err != nil {
				return err
			}
			if out == "" {
				out = file.Filename
			}
			if err := os.WriteFile(out, file.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(file.Data))
			return nil
		},
	}

	cmd.Flags().String("collection", "", "employees, expenses, quotations, invoices, payments or attendance")
	cmd.Flags().String("format", services.FormatCSV, "csv or xlsx")
	cmd.Flags().String("out", "", "output file (default <collection>_<date>.<format>)")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full JSON snapshot",
		Example: `  ledgerctl backup --out lumina.json
  ledgerctl backup > lumina.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			svcs, closeStore, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			data, err := svcs.Backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	cmd.Flags().String("out", "", "output file (default stdout)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace collections from a JSON snapshot",
		Long: `Replace every collection present in the snapshot. Collections missing from
the snapshot are left untouched. --confirm is required.`,
		Example: "  ledgerctl restore --in lumina.json --confirm",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			confirm, _ := cmd.Flags().GetBool("confirm")
			if !confirm {
				return services.ErrConfirmationRequired
			}

			var r io.Reader = cmd.InOrStdin()
			if in != "" && in != "-" {
				f, err := os.Open(in)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			svcs, closeStore, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := svcs.Backup.Restore(cmd.Context(), r)
			if err != nil {
				return err
			}
			for _, name := range models.Collections() {
				if n, ok := result.Restored[name]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", name, n)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("in", "-", "snapshot file (- for stdin)")
	cmd.Flags().Bool("confirm", false, "confirm replacing stored records")
	return cmd
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Store a snapshot in ARCHIVE_PATH and prune old ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeStore, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			path, err := svcs.Backup.Archive(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newRecalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate <invoice-id>",
		Short: "Rebuild an invoice's paid amount, balance and status from its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeStore, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			invoice, err := svcs.Invoice.Recalculate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s paid %s balance %s\n",
				invoice.InvoiceNo,
				invoice.PaymentStatus,
				ledger.FormatAmount(invoice.PaidAmount),
				ledger.FormatAmount(invoice.BalanceAmount))
			return nil
		},
	}
}
