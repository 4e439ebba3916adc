package authors

import (
	"context"

	"bookshelf/internal/types"
)

type Repository interface {
	// GetByIds fetches all requested authors in a single query and returns
	// a map with non-nil values; ids without a matching row are simply
	// absent from the map.
	GetByIds(ctx context.Context, ids ...int64) (map[int64]*types.Author, error)
}
