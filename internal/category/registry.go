// Package category resolves category identifiers into display metadata.
// The registry is injected wherever labels are needed; unknown ids resolve
// to a defined fallback instead of failing.
package category

// Info is the display metadata for one category. Color is a UI token, not a
// rendered value.
type Info struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Registry resolves a category id. Implementations must return a usable
// fallback for ids they do not know.
type Registry interface {
	Resolve(id string) Info
}

// Table is the built-in registry: two ordered lists (expense and income)
// plus an index for lookup.
type Table struct {
	expense []Info
	income  []Info
	index   map[string]Info
	unknown Info
}

// Builtin returns the stock category table.
func Builtin() *Table {
	t := &Table{
		expense: []Info{
			{ID: "comida", Label: "Comida", Icon: "🍔", Color: "orange"},
			{ID: "transporte", Label: "Transporte", Icon: "🚖", Color: "blue"},
			{ID: "ocio", Label: "Ocio", Icon: "🎉", Color: "purple"},
			{ID: "super", Label: "Súper", Icon: "🛒", Color: "green"},
			{ID: "ropa", Label: "Ropa", Icon: "👕", Color: "pink"},
			{ID: "casa", Label: "Casa", Icon: "🏠", Color: "teal"},
			{ID: "salud", Label: "Salud", Icon: "💊", Color: "red"},
			{ID: "educacion", Label: "Educación", Icon: "📚", Color: "yellow"},
			{ID: "servicios", Label: "Servicios", Icon: "💡", Color: "gray"},
			{ID: "suscrip", Label: "Suscripciones", Icon: "📺", Color: "indigo"},
			{ID: "viajes", Label: "Viajes", Icon: "✈️", Color: "cyan"},
			{ID: "otros", Label: "Otros", Icon: "💸", Color: "gray"},
		},
		income: []Info{
			{ID: "sueldo", Label: "Sueldo", Icon: "💰", Color: "green"},
			{ID: "negocio", Label: "Negocio", Icon: "👔", Color: "blue"},
			{ID: "venta", Label: "Venta", Icon: "🏷️", Color: "purple"},
			{ID: "regalo", Label: "Regalo", Icon: "🎁", Color: "pink"},
			{ID: "inversion", Label: "Inversión", Icon: "📈", Color: "yellow"},
			{ID: "otros_ingreso", Label: "Otros", Icon: "💎", Color: "teal"},
		},
		unknown: Info{ID: "otros", Label: "Otros", Icon: "💸", Color: "gray"},
	}
	t.index = make(map[string]Info, len(t.expense)+len(t.income))
	for _, c := range t.expense {
		t.index[c.ID] = c
	}
	for _, c := range t.income {
		t.index[c.ID] = c
	}
	return t
}

// Resolve looks up a category id, falling back to the unknown entry.
func (t *Table) Resolve(id string) Info {
	if c, ok := t.index[id]; ok {
		return c
	}
	return t.unknown
}

// Expense returns the expense categories in display order.
func (t *Table) Expense() []Info { return t.expense }

// Income returns the income categories in display order.
func (t *Table) Income() []Info { return t.income }
