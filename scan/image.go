package scan

import (
	"bytes"
	"image"

	// Registered decoders for extension sniffing. Word media parts are
	// occasionally stored without an extension; the bytes still carry
	// their format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var formatExts = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"bmp":  ".bmp",
	"tiff": ".tiff",
	"webp": ".webp",
}

// sniffImageExt derives a file extension from image bytes, falling
// back to the default when the format is unrecognized.
func sniffImageExt(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return defaultImageExt
	}
	if ext, ok := formatExts[format]; ok {
		return ext
	}
	return defaultImageExt
}
