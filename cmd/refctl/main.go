// refctl is an operator CLI over the reference-entity store. It goes through
// the same backend selection as any other consumer: REFDATA_BACKEND or a
// configured REFDATA_DB selects the embedded store, anything else talks to
// the remote API at REFDATA_API_URL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"refdata/internal/backend"
	"refdata/internal/config"
	"refdata/internal/domain"
	"refdata/internal/store"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "refctl",
		Short:         "Manage ordered reference-entity collections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCollectionsCommand(),
		newListCommand(),
		newGetCommand(),
		newSaveCommand(),
		newDeleteCommand(),
		newReorderCommand(),
	)
	return root
}

// withRegistry resolves the backend once and hands the kind stores to fn.
func withRegistry(fn func(ctx context.Context, reg *store.Registry) error) error {
	cfg := config.FromEnv()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	be, err := backend.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	reg := store.NewRegistry(be, logger)
	defer reg.Close()

	return fn(context.Background(), reg)
}

func storeFor(reg *store.Registry, collection string) (*store.Store, error) {
	s, ok := reg.ForCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	return s, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCollectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the known entity collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range domain.Kinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kind.Collection, kind.Label)
			}
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "List a collection in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(ctx context.Context, reg *store.Registry) error {
				s, err := storeFor(reg, args[0])
				if err != nil {
					return err
				}
				return printJSON(s.List(ctx))
			})
		},
	}
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Fetch one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(ctx context.Context, reg *store.Registry) error {
				s, err := storeFor(reg, args[0])
				if err != nil {
					return err
				}
				e := s.Get(ctx, args[1])
				if e == nil {
					return fmt.Errorf("%s/%s: %w", args[0], args[1], domain.ErrNotFound)
				}
				return printJSON(e)
			})
		},
	}
}

func newSaveCommand() *cobra.Command {
	var (
		id          string
		title       string
		description string
		parentID    string
	)
	cmd := &cobra.Command{
		Use:   "save <collection>",
		Short: "Create an entity, or update one when --id is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(ctx context.Context, reg *store.Registry) error {
				s, err := storeFor(reg, args[0])
				if err != nil {
					return err
				}

				partial := domain.Entity{
					ID:          id,
					Title:       title,
					Description: description,
					ParentID:    parentID,
				}
				if id != "" {
					if existing := s.Get(ctx, id); existing != nil {
						partial.CreatedAt = existing.CreatedAt
						partial.Position = existing.Position
					}
				}

				saved, err := s.Save(ctx, partial)
				if err != nil {
					return err
				}
				return printJSON(saved)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "id of an existing entity to update")
	cmd.Flags().StringVar(&title, "title", "", "entity title (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&parentID, "parent", "", "parent id (categories only)")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(ctx context.Context, reg *store.Registry) error {
				s, err := storeFor(reg, args[0])
				if err != nil {
					return err
				}
				return s.Delete(ctx, args[1])
			})
		},
	}
}

func newReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <collection> <id>...",
		Short: "Rewrite positions to match the given id order",
		Long: `Rewrite every entity's position to its place in the given id list.
Ids must cover the whole collection; entities are looked up first so the
reorder carries full records, not bare ids.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(func(ctx context.Context, reg *store.Registry) error {
				s, err := storeFor(reg, args[0])
				if err != nil {
					return err
				}

				byID := make(map[string]domain.Entity)
				for _, e := range s.List(ctx) {
					byID[e.ID] = e
				}

				ids := args[1:]
				ordered := make([]domain.Entity, 0, len(ids))
				for _, id := range ids {
					e, ok := byID[id]
					if !ok {
						return fmt.Errorf("%s/%s: %w", args[0], id, domain.ErrNotFound)
					}
					ordered = append(ordered, e)
				}
				if len(ordered) != len(byID) {
					return fmt.Errorf("reorder must name all %d entities, got %d", len(byID), len(ordered))
				}
				return s.Reorder(ctx, ordered)
			})
		},
	}
}
