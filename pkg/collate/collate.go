package collate

import (
	"fmt"
	"strings"

	xcollate "golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator compara identificadores de producto/socio de forma determinista.
// Por defecto compara byte a byte sobre la forma en minúsculas (ordinal,
// estable entre entornos). Si se configura un locale, usa la colación
// Unicode de golang.org/x/text ignorando mayúsculas/minúsculas.
type Comparator struct {
	col *xcollate.Collator // nil = comparación ordinal
}

// New construye un comparador. locale vacío = ordinal; en otro caso debe ser
// una etiqueta BCP 47 válida (ej. "pt", "es-CO").
func New(locale string) (*Comparator, error) {
	if locale == "" {
		return &Comparator{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	return &Comparator{col: xcollate.New(tag, xcollate.IgnoreCase)}, nil
}

// Key devuelve la clave canónica de un id para búsquedas en mapas.
// La unicidad de ids es case-insensitive independientemente del locale.
func (c *Comparator) Key(id string) string {
	return strings.ToLower(id)
}

// Compare devuelve -1, 0 o 1 según el orden canónico de los ids.
func (c *Comparator) Compare(a, b string) int {
	if c.col != nil {
		return c.col.CompareString(a, b)
	}
	return strings.Compare(c.Key(a), c.Key(b))
}

// Less indica si a precede a b en el orden canónico.
func (c *Comparator) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}

// Equal indica si dos ids identifican la misma entidad.
func (c *Comparator) Equal(a, b string) bool {
	return c.Compare(a, b) == 0
}
