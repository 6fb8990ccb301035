package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/cffkit/cffkit/internal/index"
)

// citationType mirrors index.Record. Authors flatten to display names;
// the full structured form is on the REST citation endpoints.
var citationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Citation",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"path":          &graphql.Field{Type: graphql.String},
		"title":         &graphql.Field{Type: graphql.String},
		"version":       &graphql.Field{Type: graphql.String},
		"doi":           &graphql.Field{Type: graphql.String},
		"license":       &graphql.Field{Type: graphql.String},
		"date_released": &graphql.Field{Type: graphql.String},
		"keywords":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		"abstract":      &graphql.Field{Type: graphql.String},
		"valid":         &graphql.Field{Type: graphql.Boolean},
		"issues":        &graphql.Field{Type: graphql.Int},
		"authors": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				rec, ok := p.Source.(index.Record)
				if !ok {
					return nil, nil
				}
				names := make([]string, 0, len(rec.Authors))
				for _, a := range rec.Authors {
					names = append(names, a.DisplayName())
				}
				return names, nil
			},
		},
	},
})

// buildSchema mounts the citation queries in a root schema.
func (s *Server) buildSchema() (graphql.Schema, error) {
	queryFields := graphql.Fields{
		"citations": &graphql.Field{
			Type: graphql.NewList(citationType),
			Args: graphql.FieldConfigArgument{
				"query":   &graphql.ArgumentConfig{Type: graphql.String},
				"author":  &graphql.ArgumentConfig{Type: graphql.String},
				"license": &graphql.ArgumentConfig{Type: graphql.String},
				"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultSearchLimit},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if !s.catalogReady() {
					return nil, errors.New("citation index not built")
				}
				query, _ := p.Args["query"].(string)
				authorTerm, _ := p.Args["author"].(string)
				license, _ := p.Args["license"].(string)
				limit, _ := p.Args["limit"].(int)
				return s.searchCitations(query, authorTerm, license, false, limit)
			},
		},
		"citation": &graphql.Field{
			Type: citationType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if !s.catalogReady() {
					return nil, errors.New("citation index not built")
				}
				id := p.Args["id"].(string)
				rec, err := s.catalog.Get(id)
				if err != nil {
					return nil, err
				}
				if rec == nil {
					return nil, nil
				}
				return *rec, nil
			},
		},
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
}

// handleGraphQL serves the POST /api/v1/graphql endpoint.
func (s *Server) handleGraphQL(c *fiber.Ctx) error {
	var params struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []map[string]interface{}{
				{"message": "Invalid request body"},
			},
		})
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  params.Query,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
	})

	if len(result.Errors) > 0 {
		s.log.Warn("graphql errors", zap.Any("errors", result.Errors))
	}

	return c.JSON(result)
}
