package pkg

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/svgicon/pkg/icon/icns"
	"github.com/provide-io/svgicon/pkg/icon/ico"
	"github.com/provide-io/svgicon/pkg/logging"
)

// ImageReport describes one embedded image.
type ImageReport struct {
	Label  string // directory index for ICO, type code for ICNS
	Width  int    // decoded pixel width
	Height int    // decoded pixel height
	Bytes  int
	Format string
}

// Report is the result of verifying a container.
type Report struct {
	Container string // "ico" or "icns"
	Bytes     int
	Checksum  string // "sha256:<hex>" of the whole container
	Images    []ImageReport
	Skipped   int // payloads that are not PNG (BMP/DIB, ARGB), left unchecked
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// VerifyIcon verifies a file using default logger settings.
func VerifyIcon(path string) (*Report, error) {
	logger := logging.NewLogger("svgicon-verify", logging.GetLogLevel(), nil)
	return VerifyIconWithLogger(path, logger)
}

// VerifyIconWithLogger verifies a file with a provided logger.
func VerifyIconWithLogger(path string, logger hclog.Logger) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Info("Verifying icon container", "path", path, "bytes", len(data))
	return VerifyIconData(data, logger)
}

// VerifyIconData parses an ICO or ICNS container and checks that every
// payload decodes to an image of the dimensions its record declares.
func VerifyIconData(data []byte, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch {
	case isICNS(data):
		return verifyICNS(data, logger)
	case isICO(data):
		return verifyICO(data, logger)
	default:
		return nil, ErrUnknownFormat
	}
}

func verifyICO(data []byte, logger hclog.Logger) (*Report, error) {
	f, err := ico.Parse(data)
	if err != nil {
		logger.Error("ICO layout verification failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	logger.Info("✓ ICO layout valid", "images", len(f.Entries))

	report := &Report{Container: "ico", Bytes: len(data), Checksum: checksum(data)}
	var failures []error
	for i, entry := range f.Entries {
		if !bytes.HasPrefix(f.Images[i], pngSignature) {
			report.Skipped++
			logger.Debug("Skipping non-PNG image", "index", i, "bytes", len(f.Images[i]))
			continue
		}
		img, err := inspect(fmt.Sprintf("#%d", i), f.Images[i])
		if err != nil {
			failures = append(failures, err)
			logger.Error("Image verification failed", "index", i, "error", err)
			continue
		}
		report.Images = append(report.Images, img)

		if img.Width != entry.Width() || img.Height != entry.Height() {
			err := fmt.Errorf("entry %d declares %dx%d but holds %dx%d",
				i, entry.Width(), entry.Height(), img.Width, img.Height)
			failures = append(failures, err)
			logger.Error("Image dimensions mismatch", "index", i, "error", err)
			continue
		}
		logger.Info("✓ Image valid", "index", i, "size", img.Width, "bytes", img.Bytes)
	}

	return report, finish(failures, logger)
}

func verifyICNS(data []byte, logger hclog.Logger) (*Report, error) {
	f, err := icns.Parse(data)
	if err != nil {
		logger.Error("ICNS layout verification failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	logger.Info("✓ ICNS layout valid", "blocks", len(f.Blocks))

	report := &Report{Container: "icns", Bytes: len(data), Checksum: checksum(data)}
	var failures []error
	for _, block := range f.Blocks {
		size, scale, known := icns.SizeOf(block.Type)
		if !known {
			// TOC, icnV and legacy bitmap blocks carry no PNG to check.
			logger.Debug("Skipping block with unmapped type", "type", block.Type.String())
			continue
		}

		if !bytes.HasPrefix(block.Data, pngSignature) {
			report.Skipped++
			logger.Debug("Skipping non-PNG block", "type", block.Type.String(), "bytes", len(block.Data))
			continue
		}
		img, err := inspect(block.Type.String(), block.Data)
		if err != nil {
			failures = append(failures, err)
			logger.Error("Block verification failed", "type", block.Type.String(), "error", err)
			continue
		}
		report.Images = append(report.Images, img)

		want := size * scale
		if img.Width != want || img.Height != want {
			err := fmt.Errorf("block %s expects %dx%d but holds %dx%d",
				block.Type, want, want, img.Width, img.Height)
			failures = append(failures, err)
			logger.Error("Block dimensions mismatch", "type", block.Type.String(), "error", err)
			continue
		}
		logger.Info("✓ Block valid", "type", block.Type.String(), "size", want, "bytes", img.Bytes)
	}

	return report, finish(failures, logger)
}

func inspect(label string, payload []byte) (ImageReport, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return ImageReport{}, fmt.Errorf("image %s: %w", label, err)
	}
	return ImageReport{
		Label:  label,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  len(payload),
		Format: format,
	}, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func finish(failures []error, logger hclog.Logger) error {
	if len(failures) == 0 {
		logger.Info("✓ Icon verification passed")
		return nil
	}
	logger.Error("✗ Icon verification failed", "error_count", len(failures))
	return fmt.Errorf("%w: %w", ErrVerificationFailed, errors.Join(failures...))
}
