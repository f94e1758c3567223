package bricks

// Cell is the record stored at one Key.
//
// A brick spanning several keys is stored once, on its representative cell
// (Parent == nil, Size > 1 on some axis). Every other covered key holds a cell
// whose Parent points at the representative.
type Cell struct {
	Draw        bool
	Val         float32 // shell value, 0 marks an empty placeholder
	Size        [3]int
	MatName     string
	CustomMat   bool
	Parent      *Key
	CreatedFrom *Key
	Flipped     bool
	Rotated     bool
	TopExposed  bool
	BotExposed  bool
}

var UnitSize = [3]int{1, 1, 1}

func NewCell(mat string) *Cell {
	return &Cell{
		Draw:    true,
		Val:     1,
		Size:    UnitSize,
		MatName: mat,
	}
}

func (c *Cell) Copy() *Cell {
	newC := *c
	if c.Parent != nil {
		p := *c.Parent
		newC.Parent = &p
	}
	if c.CreatedFrom != nil {
		f := *c.CreatedFrom
		newC.CreatedFrom = &f
	}
	return &newC
}

// IsRoot reports whether c is a drawn representative cell.
func (c *Cell) IsRoot() bool {
	return c.Draw && c.Parent == nil
}

func (c *Cell) IsUnit() bool {
	return c.Size == UnitSize
}

// Clear resets c to an empty, undrawn placeholder.
func (c *Cell) Clear() {
	c.Draw = false
	c.Val = 0
	c.MatName = ""
	c.CustomMat = false
	c.Size = UnitSize
	c.Parent = nil
	c.CreatedFrom = nil
	c.Flipped = false
	c.Rotated = false
	c.TopExposed = false
	c.BotExposed = false
}

func (c *Cell) compatible(o *Cell) bool {
	return c.MatName == o.MatName &&
		c.CustomMat == o.CustomMat &&
		c.Flipped == o.Flipped &&
		c.Rotated == o.Rotated
}
