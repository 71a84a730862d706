// Package region converts between block, chunk and region coordinates and
// names region files.
//
// A chunk is 16x16 blocks and a region is 32x32 chunks. Conversions to a
// coarser unit shift arithmetically, so negative coordinates round toward
// negative infinity: block -1 is in chunk -1 and region -1.
package region

// BlockToChunk returns the chunk holding a block coordinate.
func BlockToChunk(block int32) int32 { return block >> 4 }

// BlockToRegion returns the region holding a block coordinate.
func BlockToRegion(block int32) int32 { return block >> 9 }

// ChunkToRegion returns the region holding a chunk coordinate.
func ChunkToRegion(chunk int32) int32 { return chunk >> 5 }

// The inverse conversions return the origin of the coarser unit. They
// wrap for inputs whose origin does not fit in 32 bits.

// RegionToChunk returns the first chunk coordinate of a region.
func RegionToChunk(region int32) int32 { return region << 5 }

// RegionToBlock returns the first block coordinate of a region.
func RegionToBlock(region int32) int32 { return region << 9 }

// ChunkToBlock returns the first block coordinate of a chunk.
func ChunkToBlock(chunk int32) int32 { return chunk << 4 }

// ChunkIndex returns the slot of a chunk within its region, 0 to 1023,
// in the x-major order used by region file headers.
func ChunkIndex(chunkX, chunkZ int32) int {
	return int(chunkX&31) + int(chunkZ&31)*32
}
