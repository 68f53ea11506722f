// Package catalog holds the fixed content of a Certificate of Analysis: the
// canonical field labels, section titles and the literal specification text
// printed next to each measured value. Everything here is constant; layout
// and field editability live in the variant package.
package catalog

// Section identifiers used by variant definitions.
const (
	SectionHeader          = "header"
	SectionParameters      = "parameters"
	SectionOrganoleptic    = "organoleptic"
	SectionGranulation     = "granulation"
	SectionViscosity       = "viscosity"
	SectionMicrobiological = "microbiological"
)

// Header field labels.
const (
	Customer    = "Customer"
	Product     = "Product"
	Date        = "Date"
	BatchNo     = "Batch No."
	ShelfLife   = "Shelf-life"
	InvoiceNo   = "Invoice No."
	PONo        = "PO No."
	Viscosity2  = "Viscosity After 2 Hours"
	Viscosity24 = "Viscosity After 24 Hours"
)

// Row is one table row of a certificate section. Three-column rows read their
// observed value from Field; two-column rows print Literal instead and have no
// specification column.
type Row struct {
	Label   string
	Spec    string
	Field   string
	Literal string
}

// HasSpec reports whether the row renders a specification column.
func (r Row) HasSpec() bool {
	return r.Field != ""
}

// Section is a titled group of rows.
type Section struct {
	ID       string
	Title    string
	Rows     []Row
	Optional bool
}

var headerFields = []string{Customer, Product, Date, BatchNo, ShelfLife, InvoiceNo, PONo}

var sections = []Section{
	{
		ID:    SectionParameters,
		Title: "PARAMETERS SPECIFICATIONS TEST RESULTS",
		Rows: []Row{
			measured("Gum Content (%)", "more than 80%"),
			measured("Moisture (%)", "less than 12%"),
			measured("Protein (%)", "less than 5%"),
			measured("ASH Content (%)", "less than 1%"),
			measured("AIR (%)", "less than 6%"),
			measured("Fat (%)", "less than 1%"),
			measured("Ph Levels", "5.5 - 7.0"),
			measured("Arsenic", "less than 3.0 mg/kg"),
			measured("Lead", "less than 2.0 mg/kg"),
			measured("Heavy Metals", "less than 1.0 mg/kg"),
		},
	},
	{
		ID:       SectionOrganoleptic,
		Title:    "ORGANOLEPTIC ANALYSIS",
		Optional: true,
		Rows: []Row{
			{Label: "Appearance/Colour", Literal: "Cream/White Powder"},
			{Label: "Odour", Literal: "Natural"},
			{Label: "Taste", Literal: "Natural"},
		},
	},
	{
		ID:    SectionGranulation,
		Title: "PARTICLE SIZE AND GRANULATION",
		Rows: []Row{
			measured("Through 100 Mesh", "99%"),
			measured("Through 200 Mesh", "95%-99%"),
		},
	},
	{
		ID:       SectionViscosity,
		Title:    "VISCOSITY",
		Optional: true,
		Rows: []Row{
			// The thresholds were never filled in on the source certificate;
			// BLANK is printed verbatim.
			{Label: "After 2 hours", Spec: ">= BLANK cps", Field: Viscosity2},
			{Label: "After 24 hours", Spec: "<= BLANK cps", Field: Viscosity24},
		},
	},
	{
		ID:    SectionMicrobiological,
		Title: "MICROBIOLOGICAL ANALYSIS",
		Rows: []Row{
			measured("APC/gm", "less than 5000/gm"),
			measured("Yeast & Mould", "less than 500/gm"),
			measured("Coliform", "Negative"),
			measured("Ecoli", "Negative"),
			measured("Salmonella", "Negative"),
		},
	},
}

func measured(label, spec string) Row {
	return Row{Label: label, Spec: spec, Field: label}
}

// HeaderFields returns the header labels in print order.
func HeaderFields() []string {
	return append([]string(nil), headerFields...)
}

// Sections returns the table sections in print order.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, section := range sections {
		out[i] = section
		out[i].Rows = append([]Row(nil), section.Rows...)
	}
	return out
}

// SectionByID looks up a table section by id.
func SectionByID(id string) (Section, bool) {
	for _, section := range Sections() {
		if section.ID == id {
			return section, true
		}
	}
	return Section{}, false
}

// Fields returns every user-editable label in form order: header fields,
// measured parameters, granulation, microbiology and finally viscosity, which
// the original form listed last.
func Fields() []string {
	out := HeaderFields()
	var viscosity []string
	for _, section := range sections {
		for _, row := range section.Rows {
			if !row.HasSpec() {
				continue
			}
			if section.ID == SectionViscosity {
				viscosity = append(viscosity, row.Field)
				continue
			}
			out = append(out, row.Field)
		}
	}
	return append(out, viscosity...)
}

// FieldSection reports which section a label belongs to.
func FieldSection(label string) (string, bool) {
	for _, field := range headerFields {
		if field == label {
			return SectionHeader, true
		}
	}
	for _, section := range sections {
		for _, row := range section.Rows {
			if row.Field != "" && row.Field == label {
				return section.ID, true
			}
		}
	}
	return "", false
}

// KnownSection reports whether id names a header or table section.
func KnownSection(id string) bool {
	if id == SectionHeader {
		return true
	}
	_, ok := SectionByID(id)
	return ok
}
