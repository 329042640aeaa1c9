package render

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mki/isnad/pkg/errors"
)

// converter is the external SVG rasterizer. Tests point it elsewhere.
var converter = "rsvg-convert"

// ToPDF converts an SVG chain diagram to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, "pdf")
}

// ToPNG converts an SVG chain diagram to PNG. A scale of 2.0 doubles the
// resolution; scale must be positive.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convertSVG(svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// convertSVG pipes svg through the converter. A missing converter is
// UNSUPPORTED so the server answers 501 rather than 500.
func convertSVG(svg []byte, format string, args ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s export needs svg input", format)
	}
	bin, err := exec.LookPath(converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s export requires %s (brew install librsvg, apt install librsvg2-bin)", format, converter)
	}

	cmd := exec.Command(bin, append([]string{"-f", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s export failed: %s", format, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
