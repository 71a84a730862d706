package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Neumenon/nbt/nbt"
	"github.com/Neumenon/nbt/nbtio"
)

// inputName returns the file argument, or "-" for stdin.
func inputName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "-"
	}
	return args[0]
}

// openInput opens name, or the command's stdin for "-". Reads fail with the
// context's error once the command is cancelled.
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	ctx := cmd.Context()
	if name == "-" {
		return io.NopCloser(contextReader{ctx: ctx, r: cmd.InOrStdin()}), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{contextReader{ctx: ctx, r: f}, f}, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	r, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// readTag reads a tag file of any supported compression.
func (a *app) readTag(cmd *cobra.Command, name string) (nbt.Tag, error) {
	logger := loggerFromContext(cmd.Context())

	r, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t, c, err := nbtio.ReadTag(r, a.cfg.tagOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("read tag", "file", name, "compression", c, "kind", t.Kind(), "name", t.Name())
	return t, nil
}

// writeTag writes t to path, or to the command's stdout for "" and "-".
func (a *app) writeTag(cmd *cobra.Command, path string, t nbt.Tag, c nbtio.Compression) error {
	logger := loggerFromContext(cmd.Context())
	logger.Debug("write tag", "file", path, "compression", c)
	if path == "" || path == "-" {
		return nbtio.WriteTag(cmd.OutOrStdout(), t, c, a.cfg.tagOptions()...)
	}
	return nbtio.WriteFile(path, t, c, a.cfg.tagOptions()...)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// compressionValue is a --compression flag that remembers whether it was
// given, so the config file can supply the default.
type compressionValue struct {
	c   nbtio.Compression
	set bool
}

var _ pflag.Value = (*compressionValue)(nil)

func (v *compressionValue) String() string { return v.c.String() }
func (v *compressionValue) Type() string   { return "compression" }

func (v *compressionValue) Set(s string) error {
	c, err := nbtio.ParseCompression(s)
	if err != nil {
		return err
	}
	v.c, v.set = c, true
	return nil
}

// outputCompression resolves a --compression flag against the config.
func (a *app) outputCompression(v *compressionValue) nbtio.Compression {
	if v.set {
		return v.c
	}
	return a.cfg.compression()
}

func addCompressionFlag(flags *pflag.FlagSet, v *compressionValue) {
	flags.Var(v, "compression", "output compression: none, gzip, zlib, zstd, lz4 (default from config, else none)")
}
