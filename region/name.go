package region

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadName is returned by ParseName for a name that is not r.X.Z.mca.
var ErrBadName = errors.New("region: bad file name")

// NameFromRegion returns the file name of a region, "r.X.Z.mca".
func NameFromRegion(regionX, regionZ int32) string {
	return "r." + strconv.Itoa(int(regionX)) + "." + strconv.Itoa(int(regionZ)) + ".mca"
}

// NameFromChunk returns the file name of the region holding a chunk.
func NameFromChunk(chunkX, chunkZ int32) string {
	return NameFromRegion(ChunkToRegion(chunkX), ChunkToRegion(chunkZ))
}

// NameFromBlock returns the file name of the region holding a block.
func NameFromBlock(blockX, blockZ int32) string {
	return NameFromRegion(BlockToRegion(blockX), BlockToRegion(blockZ))
}

// ParseName returns the region coordinates encoded in a file name such as
// "r.-1.2.mca". Directory components are not accepted.
func ParseName(name string) (regionX, regionZ int32, err error) {
	rest, ok := strings.CutPrefix(name, "r.")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	rest, ok = strings.CutSuffix(rest, ".mca")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	xs, zs, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	x, err := strconv.ParseInt(xs, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrBadName, name, err)
	}
	z, err := strconv.ParseInt(zs, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrBadName, name, err)
	}
	return int32(x), int32(z), nil
}
