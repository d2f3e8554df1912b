package domain

// Entity is one reference record: a named item inside an ordered collection.
// All six entity kinds share this shape; ParentID is only meaningful for
// kinds whose descriptor has HasParent set.
type Entity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    *int   `json:"position"`
	ParentID    string `json:"parentId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// TopLevel reports whether the entity has no parent reference.
func (e Entity) TopLevel() bool {
	return e.ParentID == ""
}

// PositionOf returns the entity's position rank, with nil mapped to an
// effectively maximal value so that unpositioned entities sort last.
func (e Entity) PositionOf() int {
	if e.Position == nil {
		return int(^uint(0) >> 1)
	}
	return *e.Position
}

// Pos is a convenience for building position pointers in literals.
func Pos(v int) *int {
	return &v
}
