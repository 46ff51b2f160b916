package main

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dfarchive/dfsave/dfsave"
	"github.com/dfarchive/dfsave/dfsave/logger"
)

var (
	verbose    bool
	debug      bool
	noProgress bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dfsave",
		Short: "Convert legacy save streams between raw and chunked zlib form",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetLogLevel(logger.LogLevelDebug)
			} else if verbose {
				logger.SetLogLevel(logger.LogLevelInfo)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable info logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// compress command
	compressCmd := &cobra.Command{
		Use:   "compress [INPUT] [OUTPUT]",
		Short: "Convert a raw save stream to the chunked zlib representation. Omitted arguments or '-' mean stdin/stdout",
		Args:  cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runConvert(args, dfsave.Compress, "Compressing")
		},
	}
	compressCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default)")

	// decompress command
	decompressCmd := &cobra.Command{
		Use:   "decompress [INPUT] [OUTPUT]",
		Short: "Convert a chunked zlib save stream to the raw representation. Omitted arguments or '-' mean stdin/stdout",
		Args:  cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runConvert(args, dfsave.Decompress, "Decompressing")
		},
	}
	decompressCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default)")

	// inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect [INPUT]",
		Short: "Print header fields, chunk layout and flat-body digest of a save stream",
		Args:  cobra.MaximumNArgs(1),
		Run:   runInspect,
	}

	rootCmd.AddCommand(compressCmd, decompressCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openInput(args []string) (*os.File, error) {
	if len(args) < 1 || args[0] == "-" {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}

func openOutput(args []string) (*os.File, error) {
	if len(args) < 2 || args[1] == "-" {
		return os.Stdout, nil
	}
	return os.Create(args[1])
}

func runConvert(args []string, convert func(io.Reader, io.Writer) error, verb string) {
	in, err := openInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := openOutput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// Progress bar is enabled by default, but only makes sense when the
	// input size is known up front.
	var reader io.Reader = in
	if !noProgress {
		if info, err := in.Stat(); err == nil && info.Mode().IsRegular() {
			bar := progressbar.DefaultBytes(info.Size(), fmt.Sprintf("%s %s", verb, in.Name()))
			reader = io.TeeReader(in, bar)
		}
	}

	if err := convert(reader, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInspect(cmd *cobra.Command, args []string) {
	in, err := openInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	info, err := dfsave.Inspect(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Version:          %d\n", info.Version)
	if info.Compression == dfsave.CompressionChunked {
		fmt.Printf("Representation:   chunked zlib\n")
		fmt.Printf("Chunks:           %d\n", info.Chunks)
		fmt.Printf("Compressed bytes: %d\n", info.CompressedBytes)
	} else {
		fmt.Printf("Representation:   raw\n")
	}
	fmt.Printf("Flat bytes:       %d\n", info.FlatBytes)
	fmt.Printf("Flat digest:      %s\n", info.FlatDigest)
}
