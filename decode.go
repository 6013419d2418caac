package jpeg

// ToRGB converts a decoded Image with three components in YCbCr order
// into a packed 8-bit RGB buffer of the same dimensions; for any other
// component count it returns nil. Colour conversion is
// kept separate from reconstruction: callers that only need luminance, or
// that want to apply their own matrix, can skip it entirely.
func (img *Image) ToRGB() []byte {
    if img.NumComponents != 3 {
        return nil
    }
    rgb := make( []byte, img.Width*img.Height*3 )
    for i := 0; i < img.Width*img.Height; i++ {
        y := float32( img.Pix[i*3] )
        cb := float32( img.Pix[i*3+1] )
        cr := float32( img.Pix[i*3+2] )

        r := clampSample( 0.5 + y + 1.402*(cr-128.0) )
        g := clampSample( 0.5 + y - 0.34414*(cb-128.0) - 0.71414*(cr-128.0) )
        b := clampSample( 0.5 + y + 1.772*(cb-128.0) )

        rgb[i*3] = r
        rgb[i*3+1] = g
        rgb[i*3+2] = b
    }
    return rgb
}

func clampSample( v float32 ) byte {
    i := int( v )
    if i < 0 {
        return 0
    }
    if i > 255 {
        return 255
    }
    return byte( i )
}
