package jpeg

import "testing"

func TestZigZagRoundTrip( t *testing.T ) {
    var v [64]int32
    for i := range v {
        v[i] = int32( i*7 - 100 )
    }
    got := zigzag( unzigzag( v ) )
    if got != v {
        t.Fatalf( "zigzag(unzigzag(v)) != v: got %v, want %v", got, v )
    }
}

func TestZigZagPermutationIsBijective( t *testing.T ) {
    seen := make( map[int]bool, 64 )
    for _, r := range zigZagToRaster {
        if r < 0 || r > 63 {
            t.Fatalf( "zigZagToRaster entry out of range: %d", r )
        }
        if seen[r] {
            t.Fatalf( "zigZagToRaster is not a bijection: %d repeated", r )
        }
        seen[r] = true
    }
}
