package cursor

// Size is the edge length of the synthesized pointer in pixels.
const Size = 32

// rowBytes is one 1bpp row: 32 bits.
const rowBytes = Size / 8

// Image is the raw data for a transparent pointer.
//
// AND=1 keeps the screen pixel and XOR=0 adds nothing, so the composite
// is the background itself rather than a black square.
type Image struct {
	AndMask  []byte
	XorMask  []byte
	HotspotX uint32
	HotspotY uint32
	Icon     bool
}

// Transparent builds the mask planes for a fully transparent pointer.
func Transparent() Image {
	and := make([]byte, rowBytes*Size)
	for i := range and {
		and[i] = 0xFF
	}
	return Image{
		AndMask: and,
		XorMask: make([]byte, rowBytes*Size),
	}
}
