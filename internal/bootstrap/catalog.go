package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/config"
)

// LoadCatalog reads the resource catalog from cfg.CatalogPath, or the
// catalog compiled into the binary when no path is set
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	source := CatalogSourceEmbedded
	var (
		cat *catalog.Catalog
		err error
	)

	if cfg.CatalogPath != "" {
		source = cfg.CatalogPath
		data, readErr := os.ReadFile(cfg.CatalogPath)
		if readErr != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedReadCatalog, readErr)
		}
		cat, err = catalog.Parse(data)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedParseCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"source", source,
		"families", len(cat.Families()),
		"resources", len(cat.Resources()))
	return cat, nil
}
