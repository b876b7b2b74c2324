package window

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ushitora-anqou/viewport/util"
)

const allImageFlags = IMG_INIT_JPG | IMG_INIT_PNG | IMG_INIT_TIF | IMG_INIT_WEBP

// checkImageFlags mirrors IMG_Init: it fails when a requested format has no
// decoder.
func checkImageFlags(flags ImageFlags) error {
	if flags == 0 {
		return fmt.Errorf("no image formats requested")
	}
	if unknown := flags &^ allImageFlags; unknown != 0 {
		return fmt.Errorf("unsupported image format flags %#x", int(unknown))
	}
	return nil
}

// imageSurface is a decoded image held in CPU memory.
type imageSurface struct {
	img image.Image
}

func (s *imageSurface) Free() {
	s.img = nil
}

func loadImageSurface(path string) (*imageSurface, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	util.Trace("decoded image", "path", path, "format", format, "bounds", img.Bounds())
	return &imageSurface{img}, nil
}
