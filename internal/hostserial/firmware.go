package hostserial

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"

	"github.com/hwstl/hwstl/src/device/sam"
)

// ImageInfo summarizes an Intel HEX firmware image.
type ImageInfo struct {
	Segments int
	Size     int
	Low      uint32 // first address
	High     uint32 // one past the last address
}

// CheckImage parses an Intel HEX image and checks that every byte lands in
// the SAM3X8E flash array.
func CheckImage(r io.Reader) (ImageInfo, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return ImageInfo{}, fmt.Errorf("parse image: %w", err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return ImageInfo{}, ErrEmptyImage
	}

	info := ImageInfo{Segments: len(segments), Low: ^uint32(0)}
	for _, seg := range segments {
		end := uint64(seg.Address) + uint64(len(seg.Data))
		if seg.Address < sam.FlashBase || end > sam.FlashBase+sam.FlashSize {
			return ImageInfo{}, fmt.Errorf("%w: %#08x..%#08x", ErrOutsideFlash, seg.Address, end)
		}
		if seg.Address < info.Low {
			info.Low = seg.Address
		}
		if uint32(end) > info.High {
			info.High = uint32(end)
		}
		info.Size += len(seg.Data)
	}

	LogDebug(ComponentFirmware, "image checked",
		"segments", info.Segments, "size", info.Size, "low", info.Low, "high", info.High)
	return info, nil
}
