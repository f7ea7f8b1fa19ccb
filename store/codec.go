package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/regionview/world"
)

// ErrCorrupt is returned when a stored region blob cannot be decoded
var ErrCorrupt = errors.New("corrupt region blob")

// blockRecordSize is kind (1) + primary (4) + secondary (4)
const blockRecordSize = 9

// maxBlocks bounds a decoded region so a corrupt header cannot force a huge allocation
const maxBlocks = 1 << 16

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
)

// EncodeRegion packs blocks as little-endian fixed-width records and compresses them
func EncodeRegion(r world.Region) []byte {
	raw := make([]byte, 4, 4+len(r.Blocks)*blockRecordSize)
	binary.LittleEndian.PutUint32(raw, uint32(len(r.Blocks)))
	for _, b := range r.Blocks {
		raw = append(raw, byte(b.Fill.Kind))
		raw = binary.LittleEndian.AppendUint32(raw, uint32(b.Fill.Primary))
		raw = binary.LittleEndian.AppendUint32(raw, uint32(b.Fill.Secondary))
	}
	return encoder.EncodeAll(raw, nil)
}

// DecodeRegion reverses EncodeRegion
// Block counts other than RegionLen are preserved; the renderer skips such regions
func DecodeRegion(blob []byte) (world.Region, error) {
	raw, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return world.Region{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(raw) < 4 {
		return world.Region{}, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	n := int(binary.LittleEndian.Uint32(raw))
	if n > maxBlocks || len(raw) != 4+n*blockRecordSize {
		return world.Region{}, fmt.Errorf("%w: %d blocks in %d bytes", ErrCorrupt, n, len(raw))
	}

	blocks := make([]world.Block, n)
	p := raw[4:]
	for i := range blocks {
		rec := p[i*blockRecordSize:]
		kind := world.FillKind(rec[0])
		if kind > world.FillFloorCeiling {
			return world.Region{}, fmt.Errorf("%w: fill kind %d at block %d", ErrCorrupt, rec[0], i)
		}
		blocks[i] = world.Block{Fill: world.BlockFill{
			Kind:      kind,
			Primary:   world.MaterialID(binary.LittleEndian.Uint32(rec[1:])),
			Secondary: world.MaterialID(binary.LittleEndian.Uint32(rec[5:])),
		}}
	}
	return world.Region{Blocks: blocks}, nil
}
