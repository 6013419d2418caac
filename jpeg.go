// Package jpeg decodes baseline-sequential and progressive JPEG (ITU-T
// T.81) still images: container parsing, Huffman entropy decoding,
// coefficient reconstruction and colour conversion.
package jpeg

import (
    "bytes"
    "image"
    "image/color"
    "io"
)

// Desc accumulates the result of one container walk: the tables and frame
// state built up as DQT/DHT/SOFn segments are parsed, and whatever
// orientation metadata an APP1/EXIF segment carried.
type Desc struct {
    quantTables [4]*quantTable
    dcTables    [4]*huffTable
    acTables    [4]*huffTable

    frame       *frameState
    orientation *Orientation
}

// Decode parses a complete JPEG stream and reconstructs it into pixel
// samples. The returned *Orientation is nil when the file carried no
// EXIF orientation tag; the decoder never rotates pixels itself.
func Decode( r io.Reader ) ( *Image, *Orientation, error ) {
    data, err := io.ReadAll( r )
    if err != nil {
        return nil, nil, err
    }
    jpg, err := parse( data )
    if err != nil {
        return nil, jpg.orientation, err
    }
    if jpg.frame == nil {
        return nil, nil, newErr( ErrUnexpectedEndOfInput, len(data) )
    }
    img, err := reconstruct( jpg.frame )
    if err != nil {
        return nil, jpg.orientation, err
    }
    return img, jpg.orientation, nil
}

// Info walks a JPEG stream and reports its frame geometry without running
// reconstruction (dequantization, IDCT, upsampling). The container walk
// still entropy-decodes every scan, so Huffman decoding does run.
func Info( r io.Reader ) ( FrameInfo, error ) {
    data, err := io.ReadAll( r )
    if err != nil {
        return FrameInfo{}, err
    }
    jpg, err := parse( data )
    if err != nil {
        return jpg.Info(), err
    }
    return jpg.Info(), nil
}

// decodeImage adapts Decode to the signature image.RegisterFormat expects,
// producing a standard library image.Image (image.Gray for single
// component frames, image.YCbCr-shaped image.NRGBA otherwise) so that
// image.Decode works transparently against this package.
func decodeImage( r io.Reader ) ( image.Image, error ) {
    img, _, err := Decode( r )
    if err != nil {
        return nil, err
    }
    return img.toStdImage(), nil
}

func decodeConfig( r io.Reader ) ( image.Config, error ) {
    img, _, err := Decode( r )
    if err != nil {
        return image.Config{}, err
    }
    model := color.NRGBAModel
    if img.NumComponents == 1 {
        model = color.GrayModel
    }
    return image.Config{ ColorModel: model, Width: img.Width, Height: img.Height }, nil
}

// toStdImage renders Image into the standard library's image.Image so
// this package composes with image.Decode and net/http's content sniffing.
func (img *Image) toStdImage() image.Image {
    if img.NumComponents == 1 {
        g := image.NewGray( image.Rect( 0, 0, img.Width, img.Height ) )
        copy( g.Pix, img.Pix )
        return g
    }
    rgb := img.ToRGB()
    out := image.NewNRGBA( image.Rect( 0, 0, img.Width, img.Height ) )
    for i := 0; i < img.Width*img.Height; i++ {
        out.Pix[i*4] = rgb[i*3]
        out.Pix[i*4+1] = rgb[i*3+1]
        out.Pix[i*4+2] = rgb[i*3+2]
        out.Pix[i*4+3] = 0xFF
    }
    return out
}

func init() {
    image.RegisterFormat( "jpeg", "\xff\xd8", decodeImage, decodeConfig )
}

// jpegMagic reports whether data begins with the SOI marker, the same
// sniff image.RegisterFormat performs, exposed for callers that want to
// probe a buffer before committing to a full decode.
func jpegMagic( data []byte ) bool {
    return bytes.HasPrefix( data, []byte{ 0xFF, 0xD8 } )
}
