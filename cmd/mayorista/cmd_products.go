package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/internal/server"
)

var (
	reorderStart int
	reorderMoves []string
)

// mayorista products:reorder
//
//	products:reorder id3 id1 id2 --start 1   write this exact order
//	products:reorder --move id3:id1          drag id3 onto id1's slot
var productsReorderCmd = &cobra.Command{
	Use:   "products:reorder [id...]",
	Short: "Rewrite the catalog display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && len(reorderMoves) > 0 {
			return errors.New("pass either ids or --move, not both")
		}
		if len(args) == 0 && len(reorderMoves) == 0 {
			return errors.New("nothing to reorder")
		}
		if err := config.Load(); err != nil {
			return err
		}

		store, closeStore, err := server.OpenStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()
		reorder := services.NewReorderService(store)

		if len(args) > 0 {
			if err := reorder.Reorder(cmd.Context(), args, reorderStart); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d products.\n", len(args))
			return nil
		}

		items, err := listWholeCatalog(cmd.Context(), services.NewCatalogService(store))
		if err != nil {
			return err
		}
		var draft services.ReorderDraft
		if err := draft.Begin(items, "", "", ""); err != nil {
			return err
		}
		for _, mv := range reorderMoves {
			active, over, ok := strings.Cut(mv, ":")
			if !ok || active == "" || over == "" {
				return fmt.Errorf("invalid --move %q, want <id>:<target id>", mv)
			}
			draft.Move(active, over)
		}
		ids := draft.IDs()
		if err := draft.Save(cmd.Context(), reorder); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved new order of %d products:\n", len(ids))
		for i, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, id)
		}
		return nil
	},
}

type catalogLister interface {
	List(ctx context.Context, p services.ListParams) (services.Page, error)
}

// listWholeCatalog follows the cursor until the listing runs dry, so a draft
// covers every product and not just the first page.
func listWholeCatalog(ctx context.Context, catalog catalogLister) ([]models.Product, error) {
	var (
		all    []models.Product
		cursor *services.Cursor
	)
	for {
		page, err := catalog.List(ctx, services.ListParams{PageSize: services.MaxPageSize, Cursor: cursor})
		if err != nil {
			return nil, err
		}
		if len(page.Items) == 0 {
			return all, nil
		}
		all = append(all, page.Items...)
		cursor = page.Cursor
	}
}

func init() {
	productsReorderCmd.Flags().IntVar(&reorderStart, "start", 1, "sortOrder given to the first id")
	productsReorderCmd.Flags().StringArrayVar(&reorderMoves, "move", nil, "move <id>:<target id>, repeatable")
}
