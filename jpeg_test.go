package jpeg

import (
    "bytes"
    "errors"
    "testing"
)

// minimalGrayscaleJPEG builds a complete, hand-encoded 8x8 baseline
// sequential JPEG: one component, a single DC-only data unit (F[0,0] =
// 1024, Q[0] = 1), one AC symbol (immediate EOB). This is the smallest
// stream that exercises the full container walk end to end.
func minimalGrayscaleJPEG() []byte {
    var buf bytes.Buffer
    buf.Write( []byte{ 0xFF, 0xD8 } ) // SOI

    // DQT: one 8-bit table, destination 0, all entries 1.
    buf.Write( []byte{ 0xFF, 0xDB, 0x00, 0x43, 0x00 } )
    for i := 0; i < 64; i++ {
        buf.WriteByte( 1 )
    }

    // DHT, DC table 0: one 1-bit code "0" -> symbol 11 (an 11-bit diff).
    buf.Write( []byte{ 0xFF, 0xC4, 0x00, 0x14, 0x00 } )
    buf.Write( []byte{ 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0 } )
    buf.WriteByte( 11 )

    // DHT, AC table 0: one 1-bit code "0" -> symbol 0x00 (EOB).
    buf.Write( []byte{ 0xFF, 0xC4, 0x00, 0x14, 0x10 } )
    buf.Write( []byte{ 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0 } )
    buf.WriteByte( 0x00 )

    // SOF0: 8x8, one component (id 1, sampling 1x1, quant table 0).
    buf.Write( []byte{
        0xFF, 0xC0, 0x00, 0x0B, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01,
        0x01, 0x11, 0x00,
    } )

    // SOS: one component, DC/AC table 0, full spectral range, no
    // successive approximation.
    buf.Write( []byte{
        0xFF, 0xDA, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3F, 0x00,
    } )

    // Entropy-coded segment: "0" (DC symbol) + "10000000000" (diff=1024)
    // + "0" (EOB), padded to two bytes: 0x40 0x00.
    buf.Write( []byte{ 0x40, 0x00 } )

    buf.Write( []byte{ 0xFF, 0xD9 } ) // EOI
    return buf.Bytes()
}

func TestDecodeMinimalGrayscaleJPEG( t *testing.T ) {
    img, orientation, err := Decode( bytes.NewReader( minimalGrayscaleJPEG() ) )
    if err != nil {
        t.Fatal( err )
    }
    if orientation != nil {
        t.Fatalf( "expected no orientation metadata, got %+v", *orientation )
    }
    if img.Width != 8 || img.Height != 8 || img.NumComponents != 1 {
        t.Fatalf( "unexpected image shape: %+v", *img )
    }
    for i, p := range img.Pix {
        if p != 0xFF {
            t.Fatalf( "pixel %d = %#x, want 0xff (DC 1024 -> 128+128 clamped)", i, p )
        }
    }
}

func TestDecodeRejectsBadMagic( t *testing.T ) {
    _, _, err := Decode( bytes.NewReader( []byte{ 0x00, 0x01, 0x02 } ) )
    if err == nil {
        t.Fatal( "expected an error for a stream without SOI framing" )
    }
    var de *DecodeError
    if !errors.As( err, &de ) {
        t.Fatalf( "expected a *DecodeError, got %T: %v", err, err )
    }
    if de.Kind != ErrUnexpectedEndOfInput && de.Kind != ErrBadMagic {
        t.Fatalf( "unexpected error kind: %v", de.Kind )
    }
}

func TestJpegMagicSniff( t *testing.T ) {
    if !jpegMagic( []byte{ 0xFF, 0xD8, 0xFF, 0xE0 } ) {
        t.Fatal( "expected SOI-prefixed data to be recognised" )
    }
    if jpegMagic( []byte{ 0x89, 0x50, 0x4E, 0x47 } ) {
        t.Fatal( "PNG magic must not be recognised as JPEG" )
    }
}
