package books

import (
	"context"
	"log/slog"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/apperrors"
	"bookshelf/internal/types"
)

// No hard cap on the author-id set, but sets this large deserve a warning
// in the log: the IN-list is shipped to postgres verbatim.
const authorIdsWarnThreshold = 1000

func NewPGXRepository(pg *pgxpool.Pool, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg *pgxpool.Pool
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxBook struct {
	Id       int64  `db:"id"`
	Title    string `db:"title"`
	AuthorId int64  `db:"author_id"`
}

func (b *pgxBook) intoCommon() *types.Book {
	return &types.Book{
		Id:       b.Id,
		Title:    b.Title,
		AuthorId: b.AuthorId,
	}
}

func (p *pgxRepo) List(ctx context.Context, q Query) ([]*types.Book, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// A zero limit asks for an empty page; no point in a round-trip.
	// goqu also treats Limit(0) as "no limit", which is the opposite.
	if q.Limit == 0 {
		return make([]*types.Book, 0), nil
	}

	if len(q.AuthorIds) > authorIdsWarnThreshold {
		p.l.WarnContext(ctx, "books query carries a very large author id set",
			slog.Int("author_ids", len(q.AuthorIds)))
	}

	sql, params, err := p.listSQL(q)
	if err != nil {
		return nil, err
	}

	var rows []pgxBook

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, apperrors.DataSource(err)
	}

	ret := make([]*types.Book, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, row.intoCommon())
	}

	return ret, nil
}

// listSQL renders the whole page query: every filter, the ordering and the
// pagination run inside postgres, so the result set is bounded by the limit
// no matter how large the table is.
func (p *pgxRepo) listSQL(q Query) (string, []any, error) {
	qb := p.g.From("books").
		Select(
			goqu.C("id").Table("books"),
			goqu.C("title").Table("books"),
			goqu.C("author_id").Table("books"),
		).
		Limit(uint(q.Limit))

	if q.Offset != 0 {
		qb = qb.Offset(uint(q.Offset))
	}

	// An empty set means "no author filter", same as omitting the argument.
	if len(q.AuthorIds) > 0 {
		qb = qb.Where(goqu.C("author_id").Table("books").In(q.AuthorIds))
	}

	if search := escapeLike(q.Search); search != "" {
		qb = qb.Where(goqu.C("title").Table("books").ILike("%" + search + "%"))
	}

	var sortCol exp.IdentifierExpression
	switch q.Sort {
	case SortByAuthorName:
		sortCol = goqu.C("name").Table("authors")
		qb = qb.Join(goqu.T("authors"), goqu.On(
			goqu.C("author_id").Table("books").
				Eq(goqu.C("id").Table("authors")),
		))
	default:
		sortCol = goqu.C("title").Table("books")
	}

	var sortExpr exp.OrderedExpression
	if q.Direction == SortDesc {
		sortExpr = sortCol.Desc()
	} else {
		sortExpr = sortCol.Asc()
	}

	// Id tiebreak keeps the order total: rows with equal sort keys cannot
	// swap between pages, so consecutive offsets partition the match set.
	return qb.
		Order(sortExpr, goqu.C("id").Table("books").Asc()).
		ToSQL()
}

func escapeLike(term string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(term),
		"\\", "\\\\"),
		"_", "\\_"),
		"%", "\\%")
}
