package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/provide-io/svgicon/internal/outfile"
	"github.com/provide-io/svgicon/pkg"
)

var errTerminalOutput = errors.New("refusing to write binary data to a terminal; redirect stdout or pass -o FILE")

type ioFlags struct {
	input  string
	output string
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Input SVG or bitmap file, - for stdin (required)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file, - for stdout (required)")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

// run converts file-to-file through the pkg facade, or streams through memory
// when either end is stdin/stdout.
func (f *ioFlags) run(encode func([]byte) ([]byte, error), convert func(in, out string) error) error {
	if f.input != "-" && f.output != "-" {
		return convert(f.input, f.output)
	}

	if f.output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errTerminalOutput
	}

	var (
		data []byte
		err  error
	)
	if f.input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(f.input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out, err := encode(data)
	if err != nil {
		return err
	}

	if f.output == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}
	return outfile.Write(f.output, out, 0o644, logger)
}

func newPNGCommand() *cobra.Command {
	var (
		files         ioFlags
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "png",
		Short: "Render a single PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := pkg.PNGOptions{Options: opts, Width: width, Height: height}
			return files.run(
				func(data []byte) ([]byte, error) { return pkg.RenderPNG(data, o) },
				func(in, out string) error { return pkg.ConvertToPNG(in, out, o) },
			)
		},
	}
	files.register(cmd)
	cmd.Flags().IntVar(&width, "width", 0, "Output width in pixels (derived from aspect ratio when omitted)")
	cmd.Flags().IntVar(&height, "height", 0, "Output height in pixels (derived from aspect ratio when omitted)")
	return cmd
}

func newICOCommand() *cobra.Command {
	var (
		files ioFlags
		sizes []int
	)
	cmd := &cobra.Command{
		Use:   "ico",
		Short: "Build a Windows ICO container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := pkg.ICOOptions{Options: opts, Sizes: sizes}
			return files.run(
				func(data []byte) ([]byte, error) { return pkg.EncodeICO(data, o) },
				func(in, out string) error { return pkg.ConvertToICO(in, out, o) },
			)
		},
	}
	files.register(cmd)
	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "Image sizes in directory order (default 16,24,32,48,64,128,256)")
	return cmd
}

func newICNSCommand() *cobra.Command {
	var (
		files  ioFlags
		sizes  []int
		retina bool
	)
	cmd := &cobra.Command{
		Use:   "icns",
		Short: "Build a macOS ICNS container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := pkg.ICNSOptions{Options: opts, Sizes: sizes, ExcludeRetina: !retina}
			return files.run(
				func(data []byte) ([]byte, error) { return pkg.EncodeICNS(data, o) },
				func(in, out string) error { return pkg.ConvertToICNS(in, out, o) },
			)
		},
	}
	files.register(cmd)
	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "Nominal sizes (default 16,32,64,128,256,512; others are skipped)")
	cmd.Flags().BoolVar(&retina, "retina", true, "Include @2x variants")
	return cmd
}

func newSysoCommand() *cobra.Command {
	var (
		files ioFlags
		sizes []int
		arch  string
	)
	cmd := &cobra.Command{
		Use:   "syso",
		Short: "Build a Windows resource object (.syso) carrying the icon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := pkg.SysoOptions{ICOOptions: pkg.ICOOptions{Options: opts, Sizes: sizes}, Arch: arch}
			return files.run(
				func(data []byte) ([]byte, error) { return pkg.EncodeSyso(data, o) },
				func(in, out string) error { return pkg.ConvertToSyso(in, out, o) },
			)
		},
	}
	files.register(cmd)
	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "ICO sizes when the input is not already an ICO")
	cmd.Flags().StringVar(&arch, "arch", "amd64", "Target architecture (386, amd64, arm, arm64)")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check the layout and payloads of ICO/ICNS files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			out := cmd.OutOrStdout()
			for _, path := range args {
				report, err := pkg.VerifyIconWithLogger(path, logger)
				if report != nil {
					fmt.Fprintf(out, "%s: %s, %d bytes, %d images, %s\n", path, report.Container, report.Bytes, len(report.Images), report.Checksum)
					if report.Skipped > 0 {
						fmt.Fprintf(out, "  %d non-PNG images not checked\n", report.Skipped)
					}
					for _, img := range report.Images {
						fmt.Fprintf(out, "  %-6s %4dx%-4d %8d bytes %s\n", img.Label, img.Width, img.Height, img.Bytes, img.Format)
					}
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: ✗ %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: ✓ ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed verification", failed, len(args))
			}
			return nil
		},
	}
}
