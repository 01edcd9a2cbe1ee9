package model

// StatusMode selects how a status is presented.
type StatusMode string

const (
	StatusModeColor StatusMode = "color"
	StatusModeImage StatusMode = "image"
)

// IsValid returns true if the mode is a recognized value
func (m StatusMode) IsValid() bool {
	return m == StatusModeColor || m == StatusModeImage
}

// Status is the resolved status annotation of one value.
type Status struct {
	Exist bool
	Value float64
	Color string
	Mode  StatusMode
	Image string
}

// TableItem is one node of the selection tree.
type TableItem struct {
	Value string
	Label string

	Selected   bool
	Selectable bool

	ShowStatus  bool
	StatusColor string
	StatusImage string

	// IsFavorite is nil when the item cannot be favorited at all.
	IsFavorite    *bool
	CanBeFavorite bool

	// ChildValues lists the leaf values under a group, depth first. Nil on
	// leaves.
	ChildValues         []string
	ChildFavoritesCount int
	Children            []TableItem

	// Variable names the variable this item is checked against. It is
	// resolved on demand and never holds the variable itself.
	Variable string
	// Level is the name of the level that produced this item.
	Level string
}

// IsLeaf reports whether the item has no children.
func (t TableItem) IsLeaf() bool {
	return t.Children == nil
}

// Favorite reports whether the item is currently a favorite.
func (t TableItem) Favorite() bool {
	return t.IsFavorite != nil && *t.IsFavorite
}

// Values returns the leaf values this item stands for: its child values for
// a group or its own value for a leaf.
func (t TableItem) Values() []string {
	if t.Children != nil {
		return t.ChildValues
	}
	return []string{t.Value}
}
