// src/parsers/parser.go
package parsers

import (
	"fmt"
	"io"

	"github.com/username/paybook/src/models"
	"github.com/username/paybook/src/parsers/paypal"
)

type Parser interface {
	Parse(file io.Reader) ([]models.RawImportRecord, error)
}

func GetParser(source string) (Parser, error) {
	switch source {
	case "paypal":
		return paypal.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
