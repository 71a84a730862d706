package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Neumenon/nbt/nbt"
)

func (a *app) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print a tag file in the debug display form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTag(cmd, inputName(args))
			if err != nil {
				return err
			}
			s, err := nbt.Display(t, a.cfg.tagOptions()...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func (a *app) textCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text [file]",
		Short: "Print a tag file in the canonical text form",
		Long: `Text prints the canonical text form that "nbt parse" reads back. The
root name is not part of the text form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTag(cmd, inputName(args))
			if err != nil {
				return err
			}
			s, err := nbt.Text(t, a.cfg.tagOptions()...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func (a *app) parseCommand() *cobra.Command {
	var (
		output string
		name   string
		comp   compressionValue
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Convert the canonical text form to a binary tag file",
		Long: `Parse reads the canonical text form, as printed by "nbt text", and
writes the binary tag. The text form does not carry the root name; set it
with --name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := inputName(args)
			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			t, err := nbt.ParseText(string(data), a.cfg.tagOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			t.SetName(name)
			return a.writeTag(cmd, output, t, a.outputCompression(&comp))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&name, "name", "", "root tag name")
	addCompressionFlag(cmd.Flags(), &comp)
	return cmd
}

func (a *app) hashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file...]",
		Short: "Print the fingerprint of tag files",
		Long: `Hash prints the keyed BLAKE3 fingerprint of each file's binary
encoding, whatever compression the file uses. Compounds with the same
entries in a different order hash differently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				t, err := a.readTag(cmd, name)
				if err != nil {
					return err
				}
				h, err := nbt.Fingerprint(t, a.cfg.tagOptions()...)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", h, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) cborCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cbor",
		Short: "Convert between tag files and CBOR",
	}

	var encodeOutput string
	encode := &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert a tag file to CBOR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTag(cmd, inputName(args))
			if err != nil {
				return err
			}
			data, err := nbt.MarshalCBOR(t, a.cfg.tagOptions()...)
			if err != nil {
				return err
			}
			return writeOutput(cmd, encodeOutput, data)
		},
	}
	encode.Flags().StringVarP(&encodeOutput, "output", "o", "", "output file (default stdout)")

	var (
		decodeOutput string
		comp         compressionValue
	)
	decode := &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert CBOR to a tag file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := inputName(args)
			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			t, err := nbt.UnmarshalCBOR(data, a.cfg.tagOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			return a.writeTag(cmd, decodeOutput, t, a.outputCompression(&comp))
		},
	}
	decode.Flags().StringVarP(&decodeOutput, "output", "o", "", "output file (default stdout)")
	addCompressionFlag(decode.Flags(), &comp)

	cmd.AddCommand(encode, decode)
	return cmd
}
