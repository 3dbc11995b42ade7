package app

import (
	"log/slog"

	"github.com/odyssey-erp/catalog/internal/masterdata/categories"
	"github.com/odyssey-erp/catalog/internal/masterdata/vendors"
	"github.com/odyssey-erp/catalog/internal/seed"
)

// SeedTargets returns the seed targets for every collection in stores.
func SeedTargets(stores *Stores, logger *slog.Logger, recorder seed.Recorder) []seed.Target {
	return []seed.Target{
		seed.Collection[categories.Category](categories.Kind, stores.Categories, categories.Defaults(), logger, recorder),
		seed.Collection[vendors.Vendor](vendors.Kind, stores.Vendors, vendors.Defaults(), logger, recorder),
	}
}
