package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// codecCommand creates the packed size codec commands.
func (c *CLI) codecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Encode and decode packed size values",
		Long: `Encode and decode the packed 32-bit values native hosts use to return sizes
and flex ranges.

Dimensions are numbers in 0..` + strconv.Itoa(layout.MaxEncodable) + `, "inf" for an unbounded
dimension, or "max" for the greatest finite one.`,
	}

	cmd.AddCommand(c.codecEncodeCommand())
	cmd.AddCommand(c.codecDecodeCommand())

	return cmd
}

func (c *CLI) codecEncodeCommand() *cobra.Command {
	var asRange bool

	cmd := &cobra.Command{
		Use:   "encode WIDTH HEIGHT",
		Short: "Pack a size (or a min/max range with --range)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseCodecDim(args[0])
			if err != nil {
				return err
			}
			b, err := parseCodecDim(args[1])
			if err != nil {
				return err
			}

			var p layout.Packed
			if asRange {
				p, err = layout.EncodeRange(layout.FlexRange{Min: a, Max: b})
			} else {
				p, err = layout.Encode(a, b)
			}
			if err != nil {
				return err
			}
			printPacked(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asRange, "range", false, "encode a flex range MIN MAX")

	return cmd
}

func (c *CLI) codecDecodeCommand() *cobra.Command {
	var asRange bool

	cmd := &cobra.Command{
		Use:   "decode VALUE",
		Short: "Unpack a value (decimal, or hex with 0x)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePacked(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asRange {
				r, err := layout.DecodeRange(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, r)
				return nil
			}
			s, err := layout.DecodeSize(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asRange, "range", false, "decode a flex range")

	return cmd
}

func printPacked(w io.Writer, p layout.Packed) {
	fmt.Fprintf(w, "%d 0x%08x\n", int32(p), uint32(p))
}

func parseCodecDim(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "infinity", "∞":
		return layout.Infinity, nil
	case "max":
		return layout.GreatestFinite, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, rerrors.New(rerrors.ErrCodeInvalidInput, "invalid dimension %q", s)
	}
	return v, nil
}

// parsePacked accepts a signed 32-bit value, or its unsigned bit pattern.
func parsePacked(s string) (layout.Packed, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, rerrors.New(rerrors.ErrCodeInvalidInput, "invalid packed value %q", s)
	}
	switch {
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return layout.Packed(v), nil
	case v > math.MaxInt32 && v <= math.MaxUint32:
		return layout.Packed(int32(uint32(v))), nil
	}
	return 0, rerrors.New(rerrors.ErrCodeValueOutOfRange, "packed value %q does not fit in 32 bits", s)
}
