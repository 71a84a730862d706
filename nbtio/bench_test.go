package nbtio

import (
	"testing"

	"github.com/Neumenon/nbt/nbt"
)

// BenchmarkCompress reports throughput and compression ratio of each
// compression on an encoded tag.
func BenchmarkCompress(b *testing.B) {
	root := nbt.NewCompound()
	for i := int32(0); i < 64; i++ {
		section := nbt.NewCompound()
		section.PutInt("Y", i)
		section.PutLongArray("BlockStates", make([]int64, 256))
		section.PutString("biome", "minecraft:plains")
		if err := root.Put(string(rune('a'+i%26))+string(rune('0'+i/26)), section); err != nil {
			b.Fatal(err)
		}
	}
	data, err := nbt.Marshal(root)
	if err != nil {
		b.Fatal(err)
	}

	for _, c := range allCompressions {
		b.Run(c.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			var out []byte
			for i := 0; i < b.N; i++ {
				if out, err = Compress(data, c); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(len(data))/float64(len(out)), "ratio")
		})
	}
}
