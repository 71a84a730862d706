package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Neumenon/nbt/nbt"
	"github.com/Neumenon/nbt/stream"
)

func (a *app) framesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Write and read framed tag streams",
	}
	cmd.AddCommand(a.framesWriteCommand(), a.framesReadCommand())
	return cmd
}

func (a *app) framesWriteCommand() *cobra.Command {
	var withCRC, chain, asText bool

	cmd := &cobra.Command{
		Use:   "write FILE...",
		Short: "Write tag files as a frame stream, ending with an end frame",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			bw := bufio.NewWriter(cmd.OutOrStdout())
			opts := []stream.WriterOption{stream.WithEncodeOptions(a.cfg.tagOptions()...)}
			if withCRC {
				opts = append(opts, stream.WithCRC())
			}
			if chain {
				opts = append(opts, stream.WithChain())
			}
			w := stream.NewWriter(bw, opts...)

			for _, name := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				t, err := a.readTag(cmd, name)
				if err != nil {
					return err
				}
				write := w.WriteTag
				if asText {
					write = w.WriteText
				}
				if err := write(t); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			if err := w.WriteEnd(); err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			p.done(fmt.Sprintf("wrote %d frames", w.Seq()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCRC, "crc", false, "include a CRC-32 per frame")
	cmd.Flags().BoolVar(&chain, "chain", false, "chain frames with the state hash of the previous document")
	cmd.Flags().BoolVar(&asText, "text", false, "write text frames instead of binary tag frames")
	return cmd
}

func (a *app) framesReadCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Decode a frame stream and print each document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			in, err := openInput(cmd, inputName(args))
			if err != nil {
				return err
			}
			defer in.Close()

			opts := []stream.ReaderOption{stream.WithDecodeOptions(a.cfg.tagOptions()...)}
			if a.cfg.MaxFramePayload > 0 {
				opts = append(opts, stream.WithMaxPayload(a.cfg.MaxFramePayload))
			}
			r := stream.NewReader(in, opts...)
			w := cmd.OutOrStdout()

			if raw {
				frames, err := r.ReadAll()
				for _, f := range frames {
					printFrame(w, f)
				}
				logger.Debug("frames read", "count", len(frames))
				return err
			}

			n := 0
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				t, f, err := r.NextTag()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				n++
				printFrame(w, f)
				s, err := nbt.Text(t, a.cfg.tagOptions()...)
				if err != nil {
					return fmt.Errorf("frame %d: %w", f.Seq, err)
				}
				fmt.Fprintf(w, "  %s\n", s)
			}
			logger.Debug("documents read", "count", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print frame headers only, without sequence or base checks")
	return cmd
}

func printFrame(w io.Writer, f *stream.Frame) {
	fmt.Fprintf(w, "--- frame %d ---\n", f.Seq)
	fmt.Fprintf(w, "  kind=%s len=%d", f.Kind, len(f.Payload))
	if f.CRC != nil {
		fmt.Fprintf(w, " crc=%08x", *f.CRC)
	}
	if f.Base != nil {
		fmt.Fprintf(w, " base=%s", f.Base)
	}
	if f.Final {
		fmt.Fprint(w, " final=true")
	}
	fmt.Fprintln(w)
}
