package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/graphql-go/graphql"

	"bookshelf/internal/apperrors"
	"bookshelf/internal/storage/authors"
	"bookshelf/internal/storage/books"
	"bookshelf/internal/types"
)

type queryResolver struct {
	ar authors.Repository
	br books.Repository
	l  *slog.Logger
}

// resolveBooks runs the whole read cycle for one request: fetch the page,
// fetch the page's authors in one batch, assemble the response.
func (q *queryResolver) resolveBooks(p graphql.ResolveParams) (interface{}, error) {
	query := books.Query{
		AuthorIds: intListArg(p.Args, "authorIds"),
		Search:    stringArg(p.Args, "search"),
		Limit:     intArg(p.Args, "limit", defaultLimit),
		Offset:    intArg(p.Args, "offset", 0),
		Sort:      books.SortField(stringArg(p.Args, "sortField")),
		Direction: books.SortDirection(stringArg(p.Args, "sortDirection")),
	}

	page, err := q.br.List(p.Context, query)
	if err != nil {
		return nil, q.logged(p.Context, err)
	}

	byId, err := q.authorsFor(p.Context, page)
	if err != nil {
		return nil, q.logged(p.Context, err)
	}

	ret := make([]*Book, 0, len(page))
	for _, book := range page {
		ret = append(ret, &Book{
			Id:     book.Id,
			Title:  book.Title,
			Author: Author{Name: byId[book.AuthorId].Name},
		})
	}

	return ret, nil
}

// authorsFor resolves the authors of one page with a single batch query:
// the fetch size is the number of distinct author ids in the page, however
// many books share an author.
//
// A book whose author row is missing fails the whole request. A partial
// page would silently misreport the catalog; failing loudly keeps the
// upstream write-path defect visible.
func (q *queryResolver) authorsFor(ctx context.Context, page []*types.Book) (map[int64]*types.Author, error) {
	ids := make([]int64, 0, len(page))
	seen := make(map[int64]struct{}, len(page))

	for _, book := range page {
		if _, ok := seen[book.AuthorId]; !ok {
			seen[book.AuthorId] = struct{}{}
			ids = append(ids, book.AuthorId)
		}
	}

	byId, err := q.ar.GetByIds(ctx, ids...)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if byId[id] == nil {
			return nil, apperrors.DataIntegrity("book references unknown author %d", id)
		}
	}

	return byId, nil
}

// logged records server-side faults before they are folded into the GraphQL
// errors array. Client mistakes are the client's to read, not ours to log.
func (q *queryResolver) logged(ctx context.Context, err error) error {
	if errors.Is(err, apperrors.ErrInvalidArgument) {
		return err
	}

	q.l.ErrorContext(ctx, "books query failed: "+err.Error())
	return err
}

func intArg(args map[string]interface{}, key string, default_ int) int {
	if v, ok := args[key].(int); ok {
		return v
	}

	return default_
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}

	return ""
}

func intListArg(args map[string]interface{}, key string) []int64 {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}

	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(int); ok {
			ids = append(ids, int64(id))
		}
	}

	return ids
}
