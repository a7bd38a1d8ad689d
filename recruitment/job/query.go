package job

import (
	"strings"
	"time"
)

// Field names a listing attribute a predicate or order term may reference.
// Store renderers translate fields through a fixed whitelist.
type Field string

const (
	FieldID               Field = "id"
	FieldTitle            Field = "title"
	FieldDescription      Field = "description"
	FieldCompanyID        Field = "company_id"
	FieldCompanyName      Field = "company_name"
	FieldCompanySize      Field = "company_size"
	FieldLocation         Field = "location"
	FieldJobType          Field = "job_type"
	FieldExperienceLevel  Field = "experience_level"
	FieldIndustry         Field = "industry"
	FieldSalaryMin        Field = "salary_min"
	FieldSalaryMax        Field = "salary_max"
	FieldRemote           Field = "remote"
	FieldStatus           Field = "status"
	FieldPostedDate       Field = "posted_date"
	FieldDeadline         Field = "deadline"
	FieldViewCount        Field = "view_count"
	FieldApplicationCount Field = "application_count"
)

type Operator int

const (
	// OpContains: any of Fields contains the pattern binding, case-insensitive
	OpContains Operator = iota + 1
	// OpIn: Fields[0] is a member of the set binding
	OpIn
	// OpGTEOrNull: Fields[0] >= number binding, or Fields[0] unset
	OpGTEOrNull
	// OpLTEOrNull: Fields[0] <= number binding, or Fields[0] unset
	OpLTEOrNull
	// OpGTE: Fields[0] >= time binding
	OpGTE
	// OpEq: Fields[0] equals the binding
	OpEq
	// OpActive: status is published and the deadline is unset or after the time binding
	OpActive
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpIn:
		return "in"
	case OpGTEOrNull:
		return "gte_or_null"
	case OpLTEOrNull:
		return "lte_or_null"
	case OpGTE:
		return "gte"
	case OpEq:
		return "eq"
	case OpActive:
		return "active"
	default:
		return "unknown"
	}
}

type BindingKind int

const (
	BindPattern BindingKind = iota + 1 // string, matched as a substring
	BindText                           // string
	BindSet                            // []string
	BindNumber                         // float64
	BindTime                           // time.Time
	BindBool                           // bool
)

// Binding is one bound parameter. Values never become part of statement text.
type Binding struct {
	Name  string
	Kind  BindingKind
	Value any
}

// Predicate references its parameters by index into Filter.Bindings
type Predicate struct {
	Op     Operator
	Fields []Field
	Args   []int
}

// Filter is an AND of predicates plus the binding table they share
type Filter struct {
	Predicates []Predicate
	Bindings   []Binding
}

// Bind appends a binding and returns its index
func (f *Filter) Bind(name string, kind BindingKind, value any) int {
	f.Bindings = append(f.Bindings, Binding{Name: name, Kind: kind, Value: value})
	return len(f.Bindings) - 1
}

func (f *Filter) Add(op Operator, fields []Field, args ...int) {
	f.Predicates = append(f.Predicates, Predicate{Op: op, Fields: fields, Args: args})
}

// Arg returns the binding referenced by the i-th argument of p
func (f *Filter) Arg(p Predicate, i int) Binding {
	return f.Bindings[p.Args[i]]
}

func (b Binding) Text() string {
	s, _ := b.Value.(string)
	return s
}

func (b Binding) Set() []string {
	s, _ := b.Value.([]string)
	return s
}

func (b Binding) Number() float64 {
	n, _ := b.Value.(float64)
	return n
}

func (b Binding) Time() time.Time {
	t, _ := b.Value.(time.Time)
	return t
}

func (b Binding) Bool() bool {
	v, _ := b.Value.(bool)
	return v
}

type OrderKind int

const (
	OrderColumn OrderKind = iota + 1
	// OrderRelevance ranks by the first of title, company name, description containing Keyword
	OrderRelevance
	// OrderTrending ranks by the weighted view/application score
	OrderTrending
)

// OrderTerm is one sort key. Unset column values always sort last.
type OrderTerm struct {
	Kind      OrderKind
	Field     Field
	Direction SortOrder
	Keyword   string
}

// Query is a compiled, bounded search ready for a Store
type Query struct {
	Where  Filter
	Order  []OrderTerm
	Limit  int
	Offset int
}

// RelevanceTier returns 1 for a title match, 2 for company name, 3 for
// description and 4 when none contains keyword
func RelevanceTier(l *Listing, keyword string) int {
	switch {
	case ContainsFold(string(l.Title), keyword):
		return 1
	case ContainsFold(string(l.Company.Name), keyword):
		return 2
	case ContainsFold(string(l.Description), keyword):
		return 3
	default:
		return 4
	}
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
