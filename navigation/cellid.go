package navigation

import (
	"fmt"
	"math/bits"
)

// CellID is a quadtree locational code: a sentinel bit at 2*depth followed by the
// Morton interleave of the cell's grid coordinates at that depth
// Derived from tree position only, so identity is exact regardless of float geometry
type CellID uint64

// RootID identifies the depth-0 cell
const RootID CellID = 1

// newCellID encodes grid position (ix, iy) at depth
func newCellID(depth int, ix, iy uint32) CellID {
	return CellID(1)<<(2*uint(depth)) | CellID(spreadBits(ix)|spreadBits(iy)<<1)
}

// Depth returns the subdivision level
func (id CellID) Depth() int {
	return (bits.Len64(uint64(id)) - 1) / 2
}

// Grid returns the cell's integer coordinates at its depth
func (id CellID) Grid() (ix, iy uint32) {
	code := uint64(id) &^ (1 << (2 * uint(id.Depth())))
	return compactBits(code), compactBits(code >> 1)
}

// Child returns the id of quadrant q (0=SW, 1=SE, 2=NW, 3=NE)
func (id CellID) Child(q int) CellID {
	return id<<2 | CellID(q&3)
}

// Parent returns the enclosing cell, false for the root
func (id CellID) Parent() (CellID, bool) {
	if id <= RootID {
		return 0, false
	}
	return id >> 2, true
}

// Quadrant returns which child of its parent this cell is
func (id CellID) Quadrant() int {
	return int(id & 3)
}

func (id CellID) String() string {
	ix, iy := id.Grid()
	return fmt.Sprintf("cell(d%d:%d,%d)", id.Depth(), ix, iy)
}

// spreadBits inserts a zero bit between each bit of v
func spreadBits(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

// compactBits is the inverse of spreadBits on the even bits of x
func compactBits(x uint64) uint32 {
	x &= 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return uint32(x)
}
