// file: internals/features/integrations/webflow/sync.go
package webflow

import (
	"context"
	"fmt"

	"coursedesk_backend/internals/helpers/logger"
)

// CMS is the subset of the client the sync flow needs.
type CMS interface {
	CreateItemLive(ctx context.Context, fields Fields) (*Item, error)
	UpdateItemLive(ctx context.Context, itemID string, fields Fields) (*Item, error)
	CreateItem(ctx context.Context, fields Fields) (*Item, error)
	UpdateItem(ctx context.Context, itemID string, fields Fields) (*Item, error)
	PublishItems(ctx context.Context, itemIDs []string) error
}

type SyncResult struct {
	ItemID   string `json:"item_id"`
	Live     bool   `json:"live"`
	Fallback bool   `json:"fallback"`
}

// SyncItem writes the item straight to the live site. When that fails it
// writes the staged item and publishes it explicitly. A staged write that
// could not be published still returns the item id alongside the error.
func SyncItem(ctx context.Context, cms CMS, itemID string, fields Fields) (SyncResult, error) {
	log := logger.FromContext(ctx)

	var (
		item *Item
		err  error
	)
	if itemID == "" {
		item, err = cms.CreateItemLive(ctx, fields)
	} else {
		item, err = cms.UpdateItemLive(ctx, itemID, fields)
	}
	if err == nil {
		return SyncResult{ItemID: pickID(item, itemID), Live: true}, nil
	}

	log.Warn().Err(err).Str("item_id", itemID).Msg("live write failed, falling back to staged write + publish")

	if itemID == "" {
		item, err = cms.CreateItem(ctx, fields)
	} else {
		item, err = cms.UpdateItem(ctx, itemID, fields)
	}
	if err != nil {
		return SyncResult{ItemID: itemID, Fallback: true}, fmt.Errorf("staged write: %w", err)
	}

	res := SyncResult{ItemID: pickID(item, itemID), Fallback: true}
	if res.ItemID == "" {
		return res, fmt.Errorf("staged write returned no item id")
	}
	if err := cms.PublishItems(ctx, []string{res.ItemID}); err != nil {
		return res, fmt.Errorf("publish %s: %w", res.ItemID, err)
	}
	res.Live = true
	return res, nil
}

func pickID(item *Item, fallback string) string {
	if item != nil && item.ID != "" {
		return item.ID
	}
	return fallback
}
