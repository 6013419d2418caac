package jpeg

import "github.com/jrm-1535/exif"

// VisualSide names which physical side of the display the first row or
// column of decoded samples must align with once EXIF orientation is
// applied. The decoder never rotates pixels itself; Orientation is
// read-only metadata for the caller to act on.
type VisualSide int

const (
    Left VisualSide = iota
    Top
    Right
    Bottom
)

type VisualEffect int

const (
    None VisualEffect = iota
    VerticalMirror
    Rotate90
    VerticalMirrorRotate90
    HorizontalMirror
    Rotate180
    HorizontalMirrorRotate90
    Rotate270
)

// Orientation is the EXIF orientation tag (0x112), translated into the
// physical placement it describes, exactly as a TIFF/EXIF reader would
// resolve it. A nil *Orientation (returned alongside a successfully
// decoded Image) means no usable orientation tag was found: the file
// carried no APP1/EXIF segment, or its EXIF data could not be parsed, or
// it had no valid orientation tag.
type Orientation struct {
    Row0   VisualSide
    Col0   VisualSide
    Effect VisualEffect
}

const tiffOrientationTag = 0x112

// parseExifOrientation reads the orientation tag out of an APP1 payload
// that starts right after the "Exif\x00\x00" marker, using the sibling
// exif module. Any failure to parse or locate the tag is silently treated
// as "no orientation available": EXIF absence or corruption in a
// secondary segment must never fail the whole decode.
func parseExifOrientation( payload []byte ) *Orientation {
    ec := exif.Control{ Unknown: exif.KeepTag, Warn: false }
    d, err := exif.Parse( payload, 0, uint(len(payload)), &ec )
    if err != nil {
        return nil
    }
    st, v, err := d.GetIfdTagValue( exif.PRIMARY, tiffOrientationTag )
    if err != nil || st != exif.U16Slice {
        return nil
    }
    codes, ok := v.([]uint16)
    if !ok || len(codes) != 1 {
        return nil
    }
    return orientationFromCode( codes[0] )
}

func orientationFromCode( code uint16 ) *Orientation {
    switch code {
    case 1:
        return &Orientation{ Top, Left, None }
    case 2:
        return &Orientation{ Top, Right, VerticalMirror }
    case 3:
        return &Orientation{ Bottom, Right, Rotate180 }
    case 4:
        return &Orientation{ Bottom, Left, HorizontalMirror }
    case 5:
        return &Orientation{ Left, Top, HorizontalMirrorRotate90 }
    case 6:
        return &Orientation{ Right, Top, Rotate90 }
    case 7:
        return &Orientation{ Right, Bottom, VerticalMirrorRotate90 }
    case 8:
        return &Orientation{ Left, Bottom, Rotate270 }
    default:
        return nil
    }
}
