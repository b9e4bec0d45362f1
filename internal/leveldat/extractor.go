// Package leveldat unpacks the level.dat content from a zipped save archive.
//
// A save archive contains one or more directories marked by a file named
// level-init.dat. Each such directory holds a contiguous run of chunk files
// level.dat0, level.dat1, ... (each an independent zlib stream) and a
// level.datmetadata sidecar recording the expected total decompressed size as
// a little-endian unsigned integer. The extractor concatenates the
// decompressed chunks in index order and enforces the recorded size.
package leveldat

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"

	"github.com/forgeyard/savekit/internal/codec"
	"github.com/forgeyard/savekit/internal/codec/zlibcodec"
	"github.com/forgeyard/savekit/internal/stats"
)

// Well-known file names inside a save archive.
const (
	// MarkerName marks a directory holding level.dat chunks.
	MarkerName = "level-init.dat"

	// MetadataName is the sidecar recording the expected decompressed size.
	MetadataName = "level.datmetadata"

	chunkPrefix = "level.dat"
)

// SizeMismatchError indicates that the concatenated decompressed chunks do
// not add up to the size recorded in the metadata file. This is a hard
// data-integrity failure; the workspace is left in place for inspection.
type SizeMismatchError struct {
	Dir  string
	Want uint64
	Got  uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("leveldat: incorrect size of the unpacked file in %s: metadata records %d bytes, unpacked %d", e.Dir, e.Want, e.Got)
}

// DirResult describes one validated chunk directory.
type DirResult struct {
	// Dir is the directory path relative to the workspace root.
	Dir string

	// Chunks is the number of chunk files read.
	Chunks int

	// Bytes is the decompressed byte count, equal to the metadata value.
	Bytes uint64
}

// Report summarizes a successful extraction.
type Report struct {
	// Dirs lists every processed chunk directory in walk order.
	Dirs []DirResult

	// Total is the decompressed byte count across all directories.
	Total uint64
}

// DefaultWorkspaceName derives a workspace directory name from a timestamp,
// in the form YYYYMMDD_HHMM_temp_for_leveldat.
func DefaultWorkspaceName(now time.Time) string {
	return now.Format("20060102_1504") + "_temp_for_leveldat"
}

// Extractor unpacks level.dat content from save archives.
//
// An Extractor is stateless and safe for concurrent use, but two extractions
// must not share a workspace path: the destructive clear at the start of a
// run races against another run's extraction.
type Extractor struct {
	codec  codec.Codec
	logger *zap.Logger
	stats  stats.Collector
}

// New creates a new Extractor. The codec decompresses chunk files; if nil,
// zlib is used. A nil logger or collector falls back to a no-op.
func New(c codec.Codec, logger *zap.Logger, collector stats.Collector) *Extractor {
	if c == nil {
		c = zlibcodec.New(zlibcodec.BestCompression)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Extractor{codec: c, logger: logger, stats: collector}
}

// Extract unpacks the archive into workspace, streams every chunk directory's
// decompressed content to out in chunk-index order, and validates each
// directory's byte count against its metadata file.
//
// Any directory already at workspace is deleted first. On success the
// workspace is removed again; on a size mismatch it is left in place and the
// returned error is a *SizeMismatchError carrying both values.
func (e *Extractor) Extract(ctx context.Context, archivePath, workspace string, out io.Writer) (*Report, error) {
	e.stats.IncCounter(stats.MetricExtractions, 1)

	workspace = filepath.Clean(workspace)
	if err := os.RemoveAll(workspace); err != nil {
		return nil, fmt.Errorf("leveldat: clearing workspace: %w", err)
	}

	if err := e.unzip(ctx, archivePath, workspace); err != nil {
		return nil, err
	}

	dirs, err := findMarkerDirs(workspace)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, dir := range dirs {
		res, err := e.processDir(ctx, workspace, dir, out)
		if err != nil {
			return nil, err
		}
		report.Dirs = append(report.Dirs, *res)
		report.Total += res.Bytes
	}

	if err := os.RemoveAll(workspace); err != nil {
		return nil, fmt.Errorf("leveldat: removing workspace: %w", err)
	}
	return report, nil
}

// unzip extracts the full archive into workspace, preserving its directory
// structure. DEFLATE entries are inflated with the klauspost decompressor.
func (e *Extractor) unzip(ctx context.Context, archivePath, workspace string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		// OpenReader may hand back a reader together with ErrInsecurePath.
		if zr != nil {
			zr.Close()
		}
		return fmt.Errorf("leveldat: opening archive: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("leveldat: creating workspace: %w", err)
	}

	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		dest, err := entryPath(workspace, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("leveldat: creating directory: %w", err)
			}
			continue
		}

		if err := extractFile(f, dest); err != nil {
			return err
		}
	}

	e.logger.Debug("archive extracted",
		zap.String("archive", archivePath),
		zap.String("workspace", workspace),
		zap.Int("entries", len(zr.File)),
	)
	return nil
}

// entryPath resolves an archive entry name under workspace, rejecting names
// that would escape it.
func entryPath(workspace, name string) (string, error) {
	dest := filepath.Join(workspace, filepath.FromSlash(name))
	if dest != workspace && !strings.HasPrefix(dest, workspace+string(os.PathSeparator)) {
		return "", fmt.Errorf("leveldat: archive entry %q escapes workspace", name)
	}
	return dest, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("leveldat: creating directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("leveldat: opening archive entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	w, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("leveldat: creating %q: %w", dest, err)
	}

	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return fmt.Errorf("leveldat: extracting %q: %w", f.Name, err)
	}
	return w.Close()
}

// findMarkerDirs walks the extracted tree and returns every directory that
// contains a marker file, in walk order.
func findMarkerDirs(workspace string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == MarkerName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leveldat: scanning workspace: %w", err)
	}
	return dirs, nil
}

// processDir streams the directory's decompressed chunks to out and checks
// the byte count against the metadata file.
func (e *Extractor) processDir(ctx context.Context, workspace, dir string, out io.Writer) (*DirResult, error) {
	total, chunks, err := e.drainChunks(ctx, dir, out)
	if err != nil {
		return nil, err
	}

	want, err := readExpectedSize(filepath.Join(dir, MetadataName))
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(workspace, dir)
	if err != nil {
		rel = dir
	}

	if want != total {
		e.stats.IncCounter(stats.MetricSizeMismatches, 1)
		return nil, &SizeMismatchError{Dir: rel, Want: want, Got: total}
	}

	e.logger.Debug("chunk directory validated",
		zap.String("dir", rel),
		zap.Int("chunks", chunks),
		zap.Uint64("bytes", total),
	)
	return &DirResult{Dir: rel, Chunks: chunks, Bytes: total}, nil
}

// drainChunks decompresses level.dat0, level.dat1, ... into out, stopping at
// the first missing index. A gap therefore ends the run silently; the size
// check is what catches a truncated sequence.
func (e *Extractor) drainChunks(ctx context.Context, dir string, out io.Writer) (total uint64, chunks int, err error) {
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return total, chunks, err
		}

		path := filepath.Join(dir, fmt.Sprintf("%s%d", chunkPrefix, index))
		compressed, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return total, chunks, nil
		}
		if err != nil {
			return total, chunks, fmt.Errorf("leveldat: reading chunk: %w", err)
		}

		r, err := e.codec.Reader(bytes.NewReader(compressed))
		if err != nil {
			return total, chunks, fmt.Errorf("leveldat: decompressing %q: %w", path, err)
		}
		n, err := io.Copy(out, r)
		r.Close()
		if err != nil {
			return total, chunks, fmt.Errorf("leveldat: decompressing %q: %w", path, err)
		}

		total += uint64(n)
		chunks++
		e.stats.IncCounter(stats.MetricChunks, 1)
		e.stats.IncCounter(stats.MetricExtractedBytes, n)
	}
}

// readExpectedSize reads the metadata file and folds its bytes as a
// little-endian unsigned integer. The file's width is whatever was written;
// values that do not fit in 64 bits are rejected.
func readExpectedSize(path string) (uint64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("leveldat: reading metadata: %w", err)
	}

	var v uint64
	for i, b := range raw {
		if i >= 8 {
			if b != 0 {
				return 0, fmt.Errorf("leveldat: metadata value in %q overflows uint64", path)
			}
			continue
		}
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}
