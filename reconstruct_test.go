package jpeg

import "testing"

func TestReconstructGrayscaleDCOnlyBlock( t *testing.T ) {
    // Single component, 8x8, all coefficients zero except F[0,0] = 1024,
    // quantized with Q[0]=1. After dequant, IDCT and level shift, every
    // pixel equals clamp(128 + 1024/8) = 255.
    qt := &quantTable{ precision: 8 }
    qt.values[0] = 1

    c := &component{
        id: 1, hi: 1, vi: 1, quantID: 0,
        blocksPerLine: 1, blocksPerCol: 1,
        blocks: make( []dataUnit, 1 ),
    }
    c.blocks[0][0] = 1024

    fs := &frameState{
        mode: modeSequential, width: 8, height: 8,
        hMax: 1, vMax: 1,
        components: []*component{ c },
        quantTables: [4]*quantTable{ qt },
    }

    img, err := reconstruct( fs )
    if err != nil {
        t.Fatal( err )
    }
    if img.Width != 8 || img.Height != 8 || img.NumComponents != 1 {
        t.Fatalf( "unexpected image shape: %+v", *img )
    }
    for i, p := range img.Pix {
        if p != 0xFF {
            t.Fatalf( "pixel %d = %#x, want 0xff", i, p )
        }
    }
}

func TestReconstruct420Chroma( t *testing.T ) {
    // Three components: Y (2x2 sampling, four 8x8 blocks), Cb/Cr (1x1,
    // one 8x8 block each). Every block carries a flat DC-only value so
    // the expected output is a uniform plane after upsampling.
    qt := &quantTable{ precision: 8 }
    qt.values[0] = 1

    mk := func( hi, vi uint8, bpl, bpc int, dc int32 ) *component {
        c := &component{ hi: hi, vi: vi, blocksPerLine: bpl, blocksPerCol: bpc }
        c.blocks = make( []dataUnit, bpl*bpc )
        for i := range c.blocks {
            c.blocks[i][0] = dc
        }
        return c
    }

    y := mk( 2, 2, 2, 2, 0 )   // DC=0 -> mid-gray 128
    cb := mk( 1, 1, 1, 1, 0 )
    cr := mk( 1, 1, 1, 1, 0 )

    fs := &frameState{
        mode: modeSequential, width: 16, height: 16,
        hMax: 2, vMax: 2,
        components: []*component{ y, cb, cr },
        quantTables: [4]*quantTable{ qt },
    }

    img, err := reconstruct( fs )
    if err != nil {
        t.Fatal( err )
    }
    if img.Width != 16 || img.Height != 16 || img.NumComponents != 3 {
        t.Fatalf( "unexpected image shape: %+v", *img )
    }
    for i, p := range img.Pix {
        if p != 128 {
            t.Fatalf( "pixel byte %d = %d, want 128 (flat DC-only block)", i, p )
        }
    }
}

func TestInverseDCT8FlatBlockIsConstant( t *testing.T ) {
    var raster [64]int32
    raster[0] = 64 // DC-only: every output sample should be 128 + 64/8 = 136
    plane := make( []byte, 64 )
    inverseDCT8( &raster, plane, 8 )
    for i, p := range plane {
        if p != 136 {
            t.Fatalf( "sample %d = %d, want 136", i, p )
        }
    }
}
