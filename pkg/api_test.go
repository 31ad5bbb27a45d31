package pkg

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/svgicon/pkg/icon/icns"
	"github.com/provide-io/svgicon/pkg/icon/ico"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20" viewBox="0 0 40 20">
  <rect x="2" y="2" width="36" height="16" rx="4" fill="#336699"/>
</svg>`

func testOptions() Options {
	return Options{Logger: hclog.New(&hclog.LoggerOptions{Name: "api_test", Level: hclog.Debug})}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderPNGDerivesHeight(t *testing.T) {
	out, err := RenderPNG([]byte(logoSVG), PNGOptions{Options: testOptions(), Width: 80})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestEncodeICOFromSVGVerifies(t *testing.T) {
	out, err := EncodeICO([]byte(logoSVG), ICOOptions{Options: testOptions(), Sizes: []int{16, 48, 256}})
	require.NoError(t, err)

	report, err := VerifyIconData(out, testOptions().Logger)
	require.NoError(t, err)
	assert.Equal(t, "ico", report.Container)
	assert.True(t, strings.HasPrefix(report.Checksum, "sha256:"))
	assert.Len(t, report.Checksum, len("sha256:")+64)
	require.Len(t, report.Images, 3)
	assert.Equal(t, 256, report.Images[2].Width)
}

func TestEncodeICNSFromBitmapVerifies(t *testing.T) {
	out, err := EncodeICNS(pngBytes(t, 64, 64), ICNSOptions{Options: testOptions(), Sizes: []int{16, 32, 1024}})
	require.NoError(t, err)

	f, err := icns.Parse(out)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 4)
	assert.Equal(t, "ic04", f.Blocks[0].Type.String())
	assert.Equal(t, "ic12", f.Blocks[3].Type.String())

	report, err := VerifyIconData(out, nil)
	require.NoError(t, err)
	assert.Equal(t, "icns", report.Container)
	assert.Equal(t, 64, report.Images[3].Width)
}

func TestEncodeICNSExcludeRetina(t *testing.T) {
	out, err := EncodeICNS([]byte(logoSVG), ICNSOptions{Options: testOptions(), Sizes: []int{16}, ExcludeRetina: true})
	require.NoError(t, err)
	f, err := icns.Parse(out)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 1)
	assert.Equal(t, "ic04", f.Blocks[0].Type.String())
}

func TestVerifyDetectsDimensionMismatch(t *testing.T) {
	out, err := EncodeICO(pngBytes(t, 32, 32), ICOOptions{Sizes: []int{16, 32}})
	require.NoError(t, err)

	// Relabel the first entry as 24x24 while it still holds a 16x16 PNG.
	out[ico.HeaderSize] = 24
	out[ico.HeaderSize+1] = 24

	_, err = VerifyIconData(out, nil)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func icoWithPayloads(sizes []int, payloads [][]byte) []byte {
	header := ico.Header{Type: ico.TypeIcon, Count: uint16(len(sizes))}
	out := header.Pack()
	offset := ico.HeaderSize + ico.DirEntrySize*len(sizes)
	for i, size := range sizes {
		entry := ico.NewDirEntry(size, uint32(len(payloads[i])), uint32(offset))
		out = append(out, entry.Pack()...)
		offset += len(payloads[i])
	}
	for _, p := range payloads {
		out = append(out, p...)
	}
	return out
}

func TestVerifySkipsBitmapPayloads(t *testing.T) {
	// BITMAPINFOHEADER for a 32x32 DIB (height doubled for the AND mask).
	dib := make([]byte, 40+32*32*4)
	binary.LittleEndian.PutUint32(dib[0:4], 40)
	binary.LittleEndian.PutUint32(dib[4:8], 32)
	binary.LittleEndian.PutUint32(dib[8:12], 64)

	data := icoWithPayloads([]int{16, 32}, [][]byte{pngBytes(t, 16, 16), dib})

	report, err := VerifyIconData(data, testOptions().Logger)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Images, 1)
	assert.Equal(t, 16, report.Images[0].Width)

	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 0, 1)
	_, err = VerifyIconData(icoWithPayloads([]int{16}, [][]byte{corrupt}), nil)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyRejectsUnknownData(t *testing.T) {
	_, err := VerifyIconData([]byte("GIF89a"), nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = VerifyIconData([]byte("icns\x00\x00\x00\x09x"), nil)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestEncodeSysoAcceptsICOInput(t *testing.T) {
	icoData, err := EncodeICO([]byte(logoSVG), ICOOptions{Sizes: []int{16, 32}})
	require.NoError(t, err)

	obj, err := EncodeSyso(icoData, SysoOptions{Arch: "amd64"})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8664), binary.LittleEndian.Uint16(obj[0:2]))

	obj, err = EncodeSyso([]byte(logoSVG), SysoOptions{ICOOptions: ICOOptions{Sizes: []int{32}}})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8664), binary.LittleEndian.Uint16(obj[0:2]))
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(input, []byte(logoSVG), 0o644))

	icoPath := filepath.Join(dir, "logo.ico")
	require.NoError(t, ConvertToICO(input, icoPath, ICOOptions{Sizes: []int{16, 32}}))
	_, err := VerifyIconWithLogger(icoPath, hclog.NewNullLogger())
	require.NoError(t, err)

	icnsPath := filepath.Join(dir, "logo.icns")
	require.NoError(t, ConvertToICNS(input, icnsPath, ICNSOptions{Sizes: []int{16}}))
	_, err = VerifyIconWithLogger(icnsPath, hclog.NewNullLogger())
	require.NoError(t, err)

	pngPath := filepath.Join(dir, "logo.png")
	require.NoError(t, ConvertToPNG(input, pngPath, PNGOptions{}))
	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestConvertFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.svg")
	require.NoError(t, os.WriteFile(input, []byte(logoSVG), 0o644))

	output := filepath.Join(dir, "app.ico")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0o644))

	err := ConvertToICO(input, output, ICOOptions{Sizes: []int{16, 0}})
	require.Error(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestLoadSourceEmpty(t *testing.T) {
	_, err := LoadSource(nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}
