package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"

	"bookshelf/internal/response"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler mounts the GraphQL endpoint. Executed requests always answer 200
// with the standard data/errors envelope; only an unreadable request is a
// transport-level client error.
func Handler(schema graphql.Schema, rr *response.Responder) http.Handler {
	r := chi.NewRouter()

	r.Get("/graphql", func(w http.ResponseWriter, r *http.Request) {
		req := graphqlRequest{Query: r.URL.Query().Get("query")}
		execute(w, r, schema, rr, req)
	})

	r.Post("/graphql", func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rr.RespondAndLogCustom(w, r.Context(),
				errors.New("malformed request body: "+err.Error()),
				slog.LevelWarn, http.StatusBadRequest)
			return
		}

		execute(w, r, schema, rr, req)
	})

	return r
}

func execute(w http.ResponseWriter, r *http.Request, schema graphql.Schema,
	rr *response.Responder, req graphqlRequest) {

	if req.Query == "" {
		rr.RespondAndLogCustom(w, r.Context(),
			errors.New("request carries no query"),
			slog.LevelWarn, http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	rr.SendJson(w, r.Context(), result)
}
