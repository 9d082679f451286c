// src/processors/country_processor.go
package processors

import (
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/models"
)

// CountryProcessor copies new country codes from the raw import into the
// countries lookup table.
type CountryProcessor struct{}

func NewCountryProcessor() *CountryProcessor { return &CountryProcessor{} }

func (p *CountryProcessor) Stage() models.Stage { return models.StageCountry }

func (p *CountryProcessor) EmptyNotice() string { return "" }

func (p *CountryProcessor) Process(st *database.Store) (int, int, error) {
	rows, err := st.RawImports(database.Where().StagePending(models.StageCountry))
	if err != nil {
		return 0, 0, err
	}

	created := 0
	for _, row := range rows {
		if row.CountryCode != "" {
			exists, err := st.Exists("countries", "abbreviation", row.CountryCode)
			if err != nil {
				return created, len(rows), err
			}
			if !exists {
				_, err := st.Insert("countries", database.Record{
					"name":         row.Country,
					"abbreviation": row.CountryCode,
				})
				if err != nil {
					return created, len(rows), err
				}
				created++
			}
		}
		// The row is done even when it carried no country code.
		if err := st.MarkStage(row, models.StageCountry); err != nil {
			return created, len(rows), err
		}
	}
	return created, len(rows), nil
}
