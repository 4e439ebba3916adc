package authors

import (
	"context"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/apperrors"
	"bookshelf/internal/types"
)

func NewPGXRepository(pg *pgxpool.Pool, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg *pgxpool.Pool
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxAuthor struct {
	Id   int64  `db:"id"`
	Name string `db:"name"`
}

func (p *pgxRepo) GetByIds(ctx context.Context, ids ...int64) (map[int64]*types.Author, error) {
	if len(ids) == 0 {
		return make(map[int64]*types.Author), nil
	}

	sql, params, err := p.g.From("authors").
		Select("id", "name").
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxAuthor

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, apperrors.DataSource(err)
	}

	ret := make(map[int64]*types.Author, len(rows))
	for _, row := range rows {
		ret[row.Id] = &types.Author{Id: row.Id, Name: row.Name}
	}

	return ret, nil
}
