package document

// Kind discriminates the closed set of variable kinds a codebook may declare.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumeric     Kind = "numeric"
	KindText        Kind = "text"
	KindBoolean     Kind = "boolean"
	KindRecord      Kind = "object"
)

// Kinds returns every admissible variable kind in declaration-friendly order.
func Kinds() []Kind {
	return []Kind{KindCategorical, KindNumeric, KindText, KindBoolean, KindRecord}
}

// Common carries the fields shared by every variable kind. Group and Model are
// only ever populated on top-level variables; record properties are built
// without them rather than defaulted to empty.
type Common struct {
	Name        string
	Label       string
	Description string
	Repeated    bool
	Required    bool
	Group       string
	Model       string
}

// Variable is the closed union over the five codebook variable kinds. The
// interface is sealed: only the types in this package implement it, so a
// switch over the concrete types together with a default-case failure covers
// every kind.
type Variable interface {
	Kind() Kind
	Meta() Common
	isVariable()
}

// ScalarVariable is the subset of kinds legal as record properties. Record
// does not implement it, which makes "no record inside a record" a type-level
// guarantee instead of a runtime check.
type ScalarVariable interface {
	Variable
	isScalar()
}

// Category is one admissible value of a categorical variable.
type Category struct {
	Value      string
	Label      string
	Definition string
}

// Categorical declares a variable whose extracted value must be one of an
// ordered set of category values.
type Categorical struct {
	Common
	Categories []Category
}

func (v Categorical) Kind() Kind   { return KindCategorical }
func (v Categorical) Meta() Common { return v.Common }
func (Categorical) isVariable()    {}
func (Categorical) isScalar()      {}

// Values returns the declared category values in order.
func (v Categorical) Values() []string {
	values := make([]string, 0, len(v.Categories))
	for _, category := range v.Categories {
		values = append(values, category.Value)
	}
	return values
}

// Numeric declares a numeric variable with optional bounds and an optional
// value-to-label mapping. ValueLabels keys are canonical stringified numbers
// ("1", "0.5") so lookups by formatted bound value are exact.
type Numeric struct {
	Common
	Min         *float64
	Max         *float64
	Integer     bool
	ValueLabels map[string]string
}

func (v Numeric) Kind() Kind   { return KindNumeric }
func (v Numeric) Meta() Common { return v.Common }
func (Numeric) isVariable()    {}
func (Numeric) isScalar()      {}

// Text declares a free-text variable.
type Text struct {
	Common
}

func (v Text) Kind() Kind   { return KindText }
func (v Text) Meta() Common { return v.Common }
func (Text) isVariable()    {}
func (Text) isScalar()      {}

// Boolean declares a true/false variable.
type Boolean struct {
	Common
}

func (v Boolean) Kind() Kind   { return KindBoolean }
func (v Boolean) Meta() Common { return v.Common }
func (Boolean) isVariable()    {}
func (Boolean) isScalar()      {}

// Record declares a structured variable with named scalar properties. The
// property slice preserves declaration order.
type Record struct {
	Common
	Properties []ScalarVariable
}

func (v Record) Kind() Kind   { return KindRecord }
func (v Record) Meta() Common { return v.Common }
func (Record) isVariable()    {}

// Property returns the named property and whether it exists.
func (v Record) Property(name string) (ScalarVariable, bool) {
	for _, property := range v.Properties {
		if property.Meta().Name == name {
			return property, true
		}
	}
	return nil, false
}
