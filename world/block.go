package world

// MaterialID references an entry in the external material table
type MaterialID uint32

// FillKind is the fill state of a single block
type FillKind uint8

const (
	// FillEmpty is a completely empty block
	FillEmpty FillKind = iota
	// FillSolid is filled solid
	FillSolid
	// FillFloor is filled only at the bottom
	FillFloor
	// FillCeiling is filled only at the top
	FillCeiling
	// FillFloorCeiling is filled at the top and the bottom
	FillFloorCeiling
)

var fillNames = [...]string{
	FillEmpty:        "empty",
	FillSolid:        "solid",
	FillFloor:        "floor",
	FillCeiling:      "ceiling",
	FillFloorCeiling: "floor_ceiling",
}

func (k FillKind) String() string {
	if int(k) < len(fillNames) {
		return fillNames[k]
	}
	return "unknown"
}

// BlockFill carries the kind and its materials
// Primary is the only material for Solid, Floor and Ceiling; FloorCeiling uses Primary (floor) and Secondary (ceiling)
type BlockFill struct {
	Kind      FillKind
	Primary   MaterialID
	Secondary MaterialID
}

// Block is a single cell of a region
type Block struct {
	Fill BlockFill
}

// Solid creates a solid block of material m
func Solid(m MaterialID) Block { return Block{Fill: BlockFill{Kind: FillSolid, Primary: m}} }

// Floor creates a floor block of material m
func Floor(m MaterialID) Block { return Block{Fill: BlockFill{Kind: FillFloor, Primary: m}} }

// Ceiling creates a ceiling block of material m
func Ceiling(m MaterialID) Block { return Block{Fill: BlockFill{Kind: FillCeiling, Primary: m}} }

// FloorCeiling creates a block with floor material f and ceiling material c
func FloorCeiling(f, c MaterialID) Block {
	return Block{Fill: BlockFill{Kind: FillFloorCeiling, Primary: f, Secondary: c}}
}

// Empty creates an empty block
func Empty() Block { return Block{} }
