package domain

// ChartKind selects how grouped counts are drawn.
type ChartKind string

const (
	ChartKindBar        ChartKind = "bar"
	ChartKindStackedBar ChartKind = "stacked_bar"
)

// GroupOrder selects how undeclared group values are ordered.
type GroupOrder string

const (
	// GroupOrderSorted sorts observed values.
	GroupOrderSorted GroupOrder = "sorted"
	// GroupOrderAppearance keeps observed values in order of first appearance.
	GroupOrderAppearance GroupOrder = "appearance"
)

// RowFilter keeps only rows whose Column equals Value.
type RowFilter struct {
	Column string `json:"column" yaml:"column" validate:"required"`
	Value  string `json:"value" yaml:"value"`
}

// ChartSpec is the declarative description of one chart handed to a renderer.
// The renderer receives the pivot of GroupColumns against ValueColumn.
type ChartSpec struct {
	Name             string     `json:"name" yaml:"name" validate:"required,max=31"`
	Kind             ChartKind  `json:"kind" yaml:"kind" validate:"required,oneof=bar stacked_bar"`
	Title            string     `json:"title" yaml:"title"`
	GroupColumns     []string   `json:"group_columns" yaml:"group_columns" validate:"required,min=1"`
	ValueColumn      string     `json:"value_column" yaml:"value_column" validate:"required"`
	Filter           *RowFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	GroupOrder       GroupOrder `json:"group_order,omitempty" yaml:"group_order,omitempty" validate:"omitempty,oneof=sorted appearance"`
	Colors           []string   `json:"colors,omitempty" yaml:"colors,omitempty"`
	XLabel           string     `json:"x_label" yaml:"x_label"`
	YLabel           string     `json:"y_label" yaml:"y_label"`
	Rotation         int        `json:"rotation" yaml:"rotation" validate:"gte=-90,lte=90"`
	AnnotationFormat string     `json:"annotation_format,omitempty" yaml:"annotation_format,omitempty" validate:"omitempty,oneof=%d"`
}
