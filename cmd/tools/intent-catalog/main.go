// cmd/tools/intent-catalog/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/matcher"
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/assistant/scope"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/database"
	"hr-assistant/internal/models"
)

var errValidationFailed = errors.New("one or more catalogs failed validation")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var locale string

	root := &cobra.Command{
		Use:          "intent-catalog",
		Short:        "Inspect, test and publish assistant intent catalogs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&locale, "locale", "en", "locale used to fold phrases and messages")

	folder := func() *normalize.Folder { return normalize.New(locale) }

	root.AddCommand(
		newValidateCmd(folder),
		newListCmd(folder),
		newClassifyCmd(folder),
		newPublishCmd(folder),
	)
	return root
}

func newValidateCmd(folder func() *normalize.Folder) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that catalog files parse and satisfy the document schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := false
			for _, path := range args {
				cat, err := catalog.Load(cmd.Context(), folder(), catalog.NewFileSource(path))
				if err != nil {
					failed = true
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %s\n", path, catalog.Describe(cat))
			}
			if failed {
				return errValidationFailed
			}
			return nil
		},
	}
}

func newListCmd(folder func() *normalize.Folder) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print intents and their phrases in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd.Context(), path, folder())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cat.Range(func(id models.IntentID, phrases []string) bool {
				fmt.Fprintf(out, "%s\n", id)
				for _, p := range phrases {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				return true
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "catalog file; the compiled-in table when empty, not the server's assistant.catalog_path")
	return cmd
}

func newClassifyCmd(folder func() *normalize.Folder) *cobra.Command {
	var (
		path        string
		role        int64
		adminRoleID int64
	)

	cmd := &cobra.Command{
		Use:   "classify <message>...",
		Short: "Show which intent and action a message would route to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := folder()
			cat, err := loadCatalog(cmd.Context(), path, f)
			if err != nil {
				return err
			}

			message := strings.Join(args, " ")
			intent, ok := matcher.New(f).Classify(message, cat)
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "intent: none")
				fmt.Fprintln(out, "action: out_of_scope")
				return nil
			}

			var roleID *int64
			if cmd.Flags().Changed("role") {
				roleID = &role
			}
			action := scope.NewGuard(adminRoleID).Restrict(intent, roleID)
			fmt.Fprintf(out, "intent: %s\n", intent)
			fmt.Fprintf(out, "action: %s\n", action)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "catalog file; the compiled-in table when empty, not the server's assistant.catalog_path")
	cmd.Flags().Int64Var(&role, "role", 0, "caller role id (unset means no role)")
	cmd.Flags().Int64Var(&adminRoleID, "admin-role", scope.DefaultAdminRoleID, "role id treated as administrator")
	return cmd
}

func newPublishCmd(folder func() *normalize.Folder) *cobra.Command {
	var (
		redisCfg config.RedisConfig
		key      string
	)

	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "Validate a catalog file and store it under a Redis key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := catalog.NewFileSource(args[0])
			data, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := catalog.Parse(src.Name(), data, folder())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client := database.NewRedis(redisCfg)
			defer client.Close()
			if err := client.Set(ctx, key, data, 0); err != nil {
				return fmt.Errorf("publish to %s: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s to %s (%s)\n", args[0], key, catalog.Describe(cat))
			return nil
		},
	}
	cmd.Flags().StringVar(&redisCfg.Address, "redis-addr", "localhost:6379", "Redis address")
	cmd.Flags().StringVar(&redisCfg.Password, "redis-password", os.Getenv("REDIS_PASSWORD"), "Redis password")
	cmd.Flags().IntVar(&redisCfg.DB, "redis-db", 0, "Redis database")
	cmd.Flags().StringVar(&key, "key", "assistant:intents", "Redis key the server reads the catalog from")
	return cmd
}

func loadCatalog(ctx context.Context, path string, folder *normalize.Folder) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(ctx, folder, catalog.NewFileSource(path))
}
