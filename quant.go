package jpeg

// zigZagToRaster[z] is the raster (row-major, 0..63) position of the
// coefficient stored at zig-zag position z, per T.81 Figure A.6.
var zigZagToRaster = [64]int{
     0,  1,  8, 16,  9,  2,  3, 10,
    17, 24, 32, 25, 18, 11,  4,  5,
    12, 19, 26, 33, 40, 48, 41, 34,
    27, 20, 13,  6,  7, 14, 21, 28,
    35, 42, 49, 56, 57, 50, 43, 36,
    29, 22, 15, 23, 30, 37, 44, 51,
    58, 59, 52, 45, 38, 31, 39, 46,
    53, 60, 61, 54, 47, 55, 62, 63,
}

// rasterToZigZag is the inverse permutation: rasterToZigZag[r] is the
// zig-zag position of the coefficient stored at raster position r.
var rasterToZigZag [64]int

func init() {
    for z, r := range zigZagToRaster {
        rasterToZigZag[r] = z
    }
}

// unzigzag reorders a length-64 vector from zig-zag order into raster
// (row-major 8x8) order.
func unzigzag( zz [64]int32 ) ( raster [64]int32 ) {
    for z := 0; z < 64; z++ {
        raster[zigZagToRaster[z]] = zz[z]
    }
    return
}

// zigzag reorders a length-64 raster-order vector back into zig-zag order;
// used by the zig-zag round-trip test (see quant_test.go).
func zigzag( raster [64]int32 ) ( zz [64]int32 ) {
    for z := 0; z < 64; z++ {
        zz[z] = raster[zigZagToRaster[z]]
    }
    return
}

// quantTable is an ordered sequence of 64 positive integers in zig-zag
// order, identified by a destination id in [0,3]. Owned by frameState once
// installed; immutable afterwards.
type quantTable struct {
    precision uint8 // 8 or 16
    values    [64]uint16
}
