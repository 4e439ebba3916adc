// Package graph declares the GraphQL surface: every queryable field is
// listed explicitly with its own resolver function, and the whole set is
// validated once at startup by graphql.NewSchema.
package graph

import (
	"log/slog"

	"github.com/graphql-go/graphql"

	"bookshelf/internal/storage/authors"
	"bookshelf/internal/storage/books"
)

const defaultLimit = 100

// Author and Book are the response shapes, assembled by the books resolver
// after the page and its authors have been fetched.
type Author struct {
	Name string `json:"name"`
}

type Book struct {
	Id     int64  `json:"id"`
	Title  string `json:"title"`
	Author Author `json:"author"`
}

var authorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Author",
	Fields: graphql.Fields{
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(Author).Name, nil
			},
		},
	},
})

var bookType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Book",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*Book).Id, nil
			},
		},
		"title": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*Book).Title, nil
			},
		},
		"author": &graphql.Field{
			Type: graphql.NewNonNull(authorType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*Book).Author, nil
			},
		},
	},
})

var sortFieldEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortField",
	Values: graphql.EnumValueConfigMap{
		"TITLE":       &graphql.EnumValueConfig{Value: string(books.SortByTitle)},
		"AUTHOR_NAME": &graphql.EnumValueConfig{Value: string(books.SortByAuthorName)},
	},
})

var sortDirectionEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortDirection",
	Values: graphql.EnumValueConfigMap{
		"ASC":  &graphql.EnumValueConfig{Value: string(books.SortAsc)},
		"DESC": &graphql.EnumValueConfig{Value: string(books.SortDesc)},
	},
})

// NewSchema wires the repositories into the query fields. The returned
// schema is ready to execute; an error here means the field set itself is
// inconsistent and the process should not start.
func NewSchema(ar authors.Repository, br books.Repository, l *slog.Logger) (graphql.Schema, error) {
	q := &queryResolver{ar: ar, br: br, l: l}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Args: graphql.FieldConfigArgument{
					"authorIds": &graphql.ArgumentConfig{
						Type: graphql.NewList(graphql.NewNonNull(graphql.Int)),
					},
					"search": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
					"limit": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: defaultLimit,
					},
					"offset": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 0,
					},
					"sortField": &graphql.ArgumentConfig{
						Type:         sortFieldEnum,
						DefaultValue: string(books.SortByTitle),
					},
					"sortDirection": &graphql.ArgumentConfig{
						Type:         sortDirectionEnum,
						DefaultValue: string(books.SortAsc),
					},
				},
				Resolve: q.resolveBooks,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
