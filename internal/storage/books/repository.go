package books

import (
	"context"

	"bookshelf/internal/apperrors"
	"bookshelf/internal/types"
)

type SortField string

const (
	SortByTitle      SortField = "title"
	SortByAuthorName SortField = "author_name"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query describes one page of the catalog. All filters are optional and
// conjunctive; a nil/empty AuthorIds set means "no author filter", and a
// Search term that is empty after trimming means "no title filter".
type Query struct {
	AuthorIds []int64
	Search    string
	Limit     int
	Offset    int
	Sort      SortField
	Direction SortDirection
}

// Validate rejects a malformed query before it reaches the database.
func (q *Query) Validate() error {
	if q.Limit < 0 {
		return apperrors.InvalidArgument("limit must be non-negative, got %d", q.Limit)
	}

	if q.Offset < 0 {
		return apperrors.InvalidArgument("offset must be non-negative, got %d", q.Offset)
	}

	for _, id := range q.AuthorIds {
		if id < 0 {
			return apperrors.InvalidArgument("author id must be non-negative, got %d", id)
		}
	}

	switch q.Sort {
	case "", SortByTitle, SortByAuthorName:
	default:
		return apperrors.InvalidArgument("unknown sort field %q", q.Sort)
	}

	switch q.Direction {
	case "", SortAsc, SortDesc:
	default:
		return apperrors.InvalidArgument("unknown sort direction %q", q.Direction)
	}

	return nil
}

type Repository interface {
	// List returns one page of books matching the query, ordered by the
	// requested sort column with id as tiebreak so that repeated calls
	// with increasing offsets partition the match set exactly.
	List(ctx context.Context, q Query) ([]*types.Book, error)
}
