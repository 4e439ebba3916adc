package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/apperrors"
	"bookshelf/internal/storage/books"
	"bookshelf/internal/types"
)

type fakeBooksRepo struct {
	page []*types.Book
	err  error
	got  []books.Query
}

func (f *fakeBooksRepo) List(_ context.Context, q books.Query) ([]*types.Book, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	f.got = append(f.got, q)

	if f.err != nil {
		return nil, f.err
	}

	return f.page, nil
}

type fakeAuthorsRepo struct {
	byId  map[int64]*types.Author
	err   error
	calls [][]int64
}

func (f *fakeAuthorsRepo) GetByIds(_ context.Context, ids ...int64) (map[int64]*types.Author, error) {
	f.calls = append(f.calls, ids)

	if f.err != nil {
		return nil, f.err
	}

	ret := make(map[int64]*types.Author, len(ids))
	for _, id := range ids {
		if a, ok := f.byId[id]; ok {
			ret[id] = a
		}
	}

	return ret, nil
}

func newTestResolver(br *fakeBooksRepo, ar *fakeAuthorsRepo) *queryResolver {
	return &queryResolver{ar: ar, br: br, l: slog.Default()}
}

func resolveParams(args map[string]interface{}) graphql.ResolveParams {
	return graphql.ResolveParams{Context: context.Background(), Args: args}
}

func TestResolveBooks_BatchesAuthorsAcrossPage(t *testing.T) {
	page := make([]*types.Book, 0, 50)
	for i := 0; i < 50; i++ {
		page = append(page, &types.Book{Id: int64(i + 1), Title: fmt.Sprintf("Book %d", i+1), AuthorId: 7})
	}

	ar := &fakeAuthorsRepo{byId: map[int64]*types.Author{7: {Id: 7, Name: "Prolific"}}}
	q := newTestResolver(&fakeBooksRepo{page: page}, ar)

	got, err := q.resolveBooks(resolveParams(map[string]interface{}{"limit": 100}))
	require.NoError(t, err)

	// fifty books sharing one author cost exactly one fetch of one id
	require.Len(t, ar.calls, 1)
	assert.Equal(t, []int64{7}, ar.calls[0])
	assert.Len(t, got.([]*Book), 50)
}

func TestResolveBooks_FetchesOnlyDistinctAuthorIds(t *testing.T) {
	page := []*types.Book{
		{Id: 1, Title: "A", AuthorId: 1},
		{Id: 2, Title: "B", AuthorId: 2},
		{Id: 3, Title: "C", AuthorId: 1},
		{Id: 4, Title: "D", AuthorId: 3},
	}

	ar := &fakeAuthorsRepo{byId: map[int64]*types.Author{
		1: {Id: 1, Name: "One"},
		2: {Id: 2, Name: "Two"},
		3: {Id: 3, Name: "Three"},
	}}
	q := newTestResolver(&fakeBooksRepo{page: page}, ar)

	_, err := q.resolveBooks(resolveParams(map[string]interface{}{"limit": 100}))
	require.NoError(t, err)

	require.Len(t, ar.calls, 1)
	assert.Equal(t, []int64{1, 2, 3}, ar.calls[0])
}

func TestResolveBooks_MissingAuthorFailsWholeRequest(t *testing.T) {
	page := []*types.Book{{Id: 1, Title: "Orphan", AuthorId: 9}}
	q := newTestResolver(&fakeBooksRepo{page: page}, &fakeAuthorsRepo{})

	_, err := q.resolveBooks(resolveParams(map[string]interface{}{"limit": 100}))

	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
}

func TestResolveBooks_MapsArgumentsToQuery(t *testing.T) {
	br := &fakeBooksRepo{}
	q := newTestResolver(br, &fakeAuthorsRepo{})

	_, err := q.resolveBooks(resolveParams(map[string]interface{}{
		"authorIds":     []interface{}{1, 2},
		"search":        "dorian",
		"limit":         10,
		"offset":        20,
		"sortField":     "author_name",
		"sortDirection": "desc",
	}))
	require.NoError(t, err)

	require.Len(t, br.got, 1)
	assert.Equal(t, books.Query{
		AuthorIds: []int64{1, 2},
		Search:    "dorian",
		Limit:     10,
		Offset:    20,
		Sort:      books.SortByAuthorName,
		Direction: books.SortDesc,
	}, br.got[0])
}

func TestResolveBooks_EmptyPageAssemblesEmptyList(t *testing.T) {
	ar := &fakeAuthorsRepo{}
	q := newTestResolver(&fakeBooksRepo{}, ar)

	got, err := q.resolveBooks(resolveParams(map[string]interface{}{"limit": 100}))
	require.NoError(t, err)

	assert.Empty(t, got.([]*Book))
	require.Len(t, ar.calls, 1)
	assert.Empty(t, ar.calls[0])
}

func TestSchema_BooksQueryEndToEnd(t *testing.T) {
	br := &fakeBooksRepo{page: []*types.Book{
		{Id: 3, Title: "The Picture of Dorian Gray", AuthorId: 1},
	}}
	ar := &fakeAuthorsRepo{byId: map[int64]*types.Author{1: {Id: 1, Name: "Oscar Wilde"}}}

	schema, err := NewSchema(ar, br, slog.Default())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ books(search: "dorian", authorIds: [1]) { id title author { name } } }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	bs, err := json.Marshal(result.Data)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"books":[{"id":3,"title":"The Picture of Dorian Gray","author":{"name":"Oscar Wilde"}}]}`,
		string(bs))

	require.Len(t, br.got, 1)
	assert.Equal(t, "dorian", br.got[0].Search)
	assert.Equal(t, []int64{1}, br.got[0].AuthorIds)
}

func TestSchema_AppliesArgumentDefaults(t *testing.T) {
	br := &fakeBooksRepo{}

	schema, err := NewSchema(&fakeAuthorsRepo{}, br, slog.Default())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ books { id } }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	require.Len(t, br.got, 1)
	assert.Equal(t, 100, br.got[0].Limit)
	assert.Equal(t, 0, br.got[0].Offset)
	assert.Equal(t, books.SortByTitle, br.got[0].Sort)
	assert.Equal(t, books.SortAsc, br.got[0].Direction)
	assert.Empty(t, br.got[0].AuthorIds)
}

func TestSchema_NegativeLimitIsClientError(t *testing.T) {
	schema, err := NewSchema(&fakeAuthorsRepo{}, &fakeBooksRepo{}, slog.Default())
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ books(limit: -1) { id } }`,
		Context:       context.Background(),
	})

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "invalid argument")
}
