package server

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/cffkit/cffkit/internal/author"
	"github.com/cffkit/cffkit/internal/index"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 500
)

// Server wires the HTTP API to a citation catalog.
type Server struct {
	cfg     Config
	catalog *index.Catalog
	log     *zap.Logger
	schema  graphql.Schema
}

// New builds a server over the catalog in cfg.IndexDir.
func New(cfg Config, log *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		catalog: index.New(cfg.IndexDir),
		log:     log,
	}
	schema, err := s.buildSchema()
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

// App assembles the Fiber app with middleware and routes mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "cffd API v1.0",
		BodyLimit:   s.cfg.BodyLimit,
		ReadTimeout: s.cfg.ReadTimeout,
	})

	app.Use(fiberrecover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", s.handleHealth)

	api := app.Group("/api/v1")
	api.Post("/validate", s.handleValidate)
	api.Post("/convert", s.handleConvert)
	api.Get("/citations", s.handleCitations)
	api.Get("/citations/:id", s.handleCitation)
	api.Post("/graphql", s.handleGraphQL)

	return app
}

// catalogReady reports whether the catalog file exists. The server
// never builds the catalog itself; that is cff index build's job.
func (s *Server) catalogReady() bool {
	_, err := os.Stat(s.catalog.JSONLPath())
	return err == nil
}

// searchCitations runs a catalog search with the author post-filter,
// shared by the REST and GraphQL query paths.
func (s *Server) searchCitations(query, authorTerm, license string, validOnly bool, limit int) ([]index.Record, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	var records []index.Record
	var err error
	if query == "" && authorTerm == "" && license == "" && !validOnly {
		records, err = s.catalog.List(limit)
	} else {
		filters := index.SearchFilters{
			Keyword:   query,
			License:   license,
			ValidOnly: validOnly,
		}
		if authorTerm != "" {
			filters.Authors = []string{authorTerm}
		}
		records, err = s.catalog.Search(filters, limit)
	}
	if err != nil {
		return nil, err
	}

	// FTS prefix matching over-returns on author terms; the structured
	// name match trims the result to real hits.
	if authorTerm != "" {
		queries := []author.Query{author.ParseQuery(authorTerm)}
		matched := records[:0]
		for _, rec := range records {
			if author.AllMatch(queries, rec.Authors) {
				matched = append(matched, rec)
			}
		}
		records = matched
	}

	if records == nil {
		records = []index.Record{}
	}
	return records, nil
}
