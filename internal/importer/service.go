package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
)

type Catalog interface {
	Import(ctx context.Context, userID int64, rows []catalog.ImportRow) ([]*catalog.Product, error)
}

type Service struct {
	parser  *Parser
	catalog Catalog
}

func NewService(c Catalog) *Service {
	return &Service{
		parser:  NewParser(),
		catalog: c,
	}
}

// Import parses the spreadsheet and creates every product in it, or none.
func (s *Service) Import(ctx context.Context, userID int64, r io.Reader) ([]*catalog.Product, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	return s.catalog.Import(ctx, userID, rows)
}
