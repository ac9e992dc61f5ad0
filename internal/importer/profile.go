package importer

// Profile describes the header layout of a product spreadsheet. Adding a new
// layout is just adding a Profile to the profiles slice.
type Profile struct {
	Name        string
	NameCol     string
	PriceCol    string
	StockCol    string
	CategoryCol string
	DescCol     string
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.PriceCol, p.StockCol}
}

// profiles is tried in order during detection.
var profiles = []Profile{
	{
		Name:        "vitrine",
		NameCol:     "nome",
		PriceCol:    "preço",
		StockCol:    "estoque",
		CategoryCol: "categoria",
		DescCol:     "descrição",
	},
	{
		Name:        "planilha",
		NameCol:     "produto",
		PriceCol:    "valor",
		StockCol:    "quantidade",
		CategoryCol: "categoria",
		DescCol:     "descrição",
	},
}
