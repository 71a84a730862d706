package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Neumenon/nbt/region"
)

func (a *app) regionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Locate blocks and chunks in region files",
	}
	cmd.AddCommand(a.regionLocateCommand(), a.regionNameCommand())
	return cmd
}

func (a *app) regionLocateCommand() *cobra.Command {
	var (
		x, z    int32
		isChunk bool
	)

	cmd := &cobra.Command{
		Use:   "locate --x X --z Z",
		Short: "Print the chunk, region and region file of a block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			chunkX, chunkZ := x, z
			if !isChunk {
				chunkX, chunkZ = region.BlockToChunk(x), region.BlockToChunk(z)
				fmt.Fprintf(w, "block   %d %d\n", x, z)
			}
			regionX, regionZ := region.ChunkToRegion(chunkX), region.ChunkToRegion(chunkZ)
			fmt.Fprintf(w, "chunk   %d %d\n", chunkX, chunkZ)
			fmt.Fprintf(w, "region  %d %d\n", regionX, regionZ)
			fmt.Fprintf(w, "file    %s\n", region.NameFromRegion(regionX, regionZ))
			_, err := fmt.Fprintf(w, "index   %d\n", region.ChunkIndex(chunkX, chunkZ))
			return err
		},
	}

	cmd.Flags().Int32Var(&x, "x", 0, "x coordinate")
	cmd.Flags().Int32Var(&z, "z", 0, "z coordinate")
	cmd.Flags().BoolVar(&isChunk, "chunk", false, "coordinates are chunk coordinates")
	return cmd
}

func (a *app) regionNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name FILE",
		Short: "Print the chunk and block ranges covered by a region file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regionX, regionZ, err := region.ParseName(filepath.Base(args[0]))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			chunkX, chunkZ := region.RegionToChunk(regionX), region.RegionToChunk(regionZ)
			blockX, blockZ := region.RegionToBlock(regionX), region.RegionToBlock(regionZ)
			fmt.Fprintf(w, "region  %d %d\n", regionX, regionZ)
			fmt.Fprintf(w, "chunks  %d..%d %d..%d\n", chunkX, chunkX+31, chunkZ, chunkZ+31)
			_, err = fmt.Fprintf(w, "blocks  %d..%d %d..%d\n", blockX, blockX+511, blockZ, blockZ+511)
			return err
		},
	}
}
