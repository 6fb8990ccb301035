// Package convert renders CFF documents into downstream citation formats.
// Bibliographic formats (bibtex, apalike, ris) work from Document.Citation(),
// so a preferred-citation entry wins over the software metadata itself, which
// is what the format asks consumers to do. Deposit formats (schemaorg,
// zenodo) describe the deposited work and read the document directly.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

// ErrUnknownFormat is returned for format names Convert does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Func renders a document into one output format.
type Func func(*cff.Document) (string, error)

var formats = map[string]Func{
	"bibtex":    ToBibTeX,
	"apalike":   ToAPA,
	"ris":       ToRIS,
	"schemaorg": ToSchemaOrg,
	"zenodo":    ToZenodo,
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Convert renders doc in the named format.
func Convert(doc *cff.Document, format string) (string, error) {
	fn, ok := formats[format]
	if !ok {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return fn(doc)
}
