package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/harrison/pathsieve/internal/config"
	"github.com/harrison/pathsieve/internal/logger"
	"github.com/harrison/pathsieve/internal/stream"
)

// streamOptions carries the resolved settings for one stream run.
type streamOptions struct {
	encoding   string
	separator  string
	keepEnds   bool
	jsonLines  bool
	boundary   string
	chunkSize  int
	decompress string
	logToFile  bool
	logDir     string
}

// NewStreamCommand creates and returns the stream subcommand
func NewStreamCommand() *cobra.Command {
	var encoding string
	var separator string
	var keepEnds bool
	var jsonLines bool
	var boundary string
	var chunkSize int
	var decompress string
	var logToFile bool

	cmd := &cobra.Command{
		Use:   "stream [file]",
		Short: "Run a chunked processing pipeline over a byte stream",
		Long: `Read a file (or stdin) in fixed-size chunks and push the bytes
through an incremental processing pipeline:

  decode      strict character decoding with partial-sequence buffering
  splitlines  line splitting that never tears a separator across chunks
  boundary    re-chunking so a byte pattern is never split across units
  jsonline    per-line JSON parsing into ok/failed results

By default the pipeline decodes and splits lines. --json appends JSON
line parsing; --boundary replaces line splitting with pattern-safe
re-chunking. Input may be transparently decompressed with --decompress.

Exit code: 0 on success, 1 on read or pipeline failure`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCommand(cmd)
			if err != nil {
				return err
			}

			flagString := func(name string, p *string) *string {
				if cmd.Flags().Changed(name) {
					return p
				}
				return nil
			}
			var chunkPtr *int
			if cmd.Flags().Changed("chunk-size") {
				chunkPtr = &chunkSize
			}
			cfg.MergeWithFlags(nil, nil, flagString("encoding", &encoding), chunkPtr, flagString("decompress", &decompress))
			if cmd.Flags().Changed("separator") {
				cfg.Stream.Separator = separator
			}
			if cmd.Flags().Changed("keep-ends") {
				cfg.Stream.KeepEnds = keepEnds
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := streamOptions{
				encoding:   cfg.Stream.Encoding,
				separator:  cfg.Stream.Separator,
				keepEnds:   cfg.Stream.KeepEnds,
				jsonLines:  jsonLines,
				boundary:   boundary,
				chunkSize:  cfg.Stream.ChunkSize,
				decompress: cfg.Stream.Decompress,
				logToFile:  logToFile,
				logDir:     cfg.LogDir,
			}

			input, closeInput, err := openStreamInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeInput()

			log := newCommandLogger(cmd, cfg)
			return runStream(input, opts, cfg, log, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&encoding, "encoding", "", "input character encoding (IANA name, default utf-8)")
	cmd.Flags().StringVar(&separator, "separator", "", "explicit line separator (default: universal newlines)")
	cmd.Flags().BoolVar(&keepEnds, "keep-ends", false, "retain line terminators on emitted lines")
	cmd.Flags().BoolVar(&jsonLines, "json", false, "parse each line as a JSON value")
	cmd.Flags().StringVar(&boundary, "boundary", "", "emit units that never split this byte pattern")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "read size in bytes")
	cmd.Flags().StringVar(&decompress, "decompress", "", "decompress input: gzip or zstd")
	cmd.Flags().BoolVar(&logToFile, "log-file", false, "also write a run log under the configured log directory")
	cmd.MarkFlagsMutuallyExclusive("json", "boundary")
	cmd.MarkFlagsMutuallyExclusive("separator", "boundary")

	return cmd
}

// openStreamInput resolves the input reader: the file argument when
// present, the command's stdin otherwise.
func openStreamInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// wrapDecompression layers the configured decompressor over the raw input.
func wrapDecompression(r io.Reader, mode string) (io.Reader, func(), error) {
	switch mode {
	case "":
		return r, func() {}, nil
	case "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip input: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd input: %w", err)
		}
		return zr.IOReadCloser(), zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown decompress mode %q", mode)
	}
}

// buildPipeline assembles the processor chain for the run.
func buildPipeline(opts streamOptions) (*stream.Pipeline, error) {
	dec, err := stream.NewDecoder(opts.encoding)
	if err != nil {
		return nil, err
	}

	if opts.boundary != "" {
		b, err := stream.NewBoundary([]byte(opts.boundary))
		if err != nil {
			return nil, err
		}
		return stream.NewPipeline(dec, b), nil
	}

	procs := []stream.Processor{dec, stream.NewSplitLines(opts.separator, opts.keepEnds)}
	if opts.jsonLines {
		procs = append(procs, stream.JSONLine{})
	}
	return stream.NewPipeline(procs...), nil
}

func runStream(input io.Reader, opts streamOptions, cfg *config.Config, log logger.Logger, output io.Writer) error {
	runID := uuid.New().String()[:8]
	start := time.Now()

	input, closeDecomp, err := wrapDecompression(input, opts.decompress)
	if err != nil {
		return err
	}
	defer closeDecomp()

	pipeline, err := buildPipeline(opts)
	if err != nil {
		return err
	}

	loggers := []logger.Logger{log}
	if opts.logToFile {
		fl, err := logger.NewFileLoggerWithDirAndLevel(opts.logDir, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	for _, l := range loggers {
		l.LogDebug(fmt.Sprintf("run %s: encoding=%s chunk_size=%d", runID, opts.encoding, opts.chunkSize))
	}

	stats := logger.RunStats{RunID: runID}
	emit := func(units []stream.Unit) error {
		for _, unit := range units {
			if err := emitUnit(output, unit, opts, &stats, log); err != nil {
				return err
			}
		}
		return nil
	}

	buf := make([]byte, opts.chunkSize)
	for {
		n, readErr := input.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			stats.Chunks++
			stats.Bytes += int64(n)

			out, err := pipeline.Process(chunk)
			if err != nil {
				return err
			}
			if err := emit(out); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}

	out, err := pipeline.Finalize()
	if err != nil {
		return err
	}
	if err := emit(out); err != nil {
		return err
	}

	stats.Duration = time.Since(start)
	for _, l := range loggers {
		l.LogRunSummary(stats)
	}
	return nil
}

// emitUnit writes one pipeline output unit to the data stream and
// updates the run counters.
func emitUnit(output io.Writer, unit stream.Unit, opts streamOptions, stats *logger.RunStats, log logger.Logger) error {
	if opts.jsonLines {
		result, ok := unit.(stream.Result)
		if !ok {
			return fmt.Errorf("unexpected unit type %T in json mode", unit)
		}
		if !result.OK {
			stats.Failures++
			log.LogWarn(fmt.Sprintf("unparseable line: %v", result.Raw))
			return nil
		}
		data, err := json.Marshal(result.Value)
		if err != nil {
			return fmt.Errorf("re-encoding value: %w", err)
		}
		stats.Units++
		_, err = fmt.Fprintf(output, "%s\n", data)
		return err
	}

	stats.Units++
	switch v := unit.(type) {
	case string:
		_, err := fmt.Fprintln(output, v)
		return err
	case []byte:
		_, err := fmt.Fprintln(output, string(v))
		return err
	default:
		return fmt.Errorf("unexpected unit type %T", unit)
	}
}
