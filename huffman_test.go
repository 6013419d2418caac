package jpeg

import "testing"

func TestHuffmanTableDecodesCanonicalCodes( t *testing.T ) {
    // Two codes of length 2: "00" -> 0xAA, "01" -> 0xBB.
    var bits [16]uint8
    bits[1] = 2
    vals := []uint8{ 0xAA, 0xBB }

    table, err := newHuffTable( bits, vals )
    if err != nil {
        t.Fatal( err )
    }

    // bit sequence 0,0,0,1 packed MSB-first.
    bs, _ := newBitStream( []byte{ 0b00010000 }, 0 )

    sym, err := table.decodeSymbol( bs )
    if err != nil {
        t.Fatal( err )
    }
    if sym != 0xAA {
        t.Fatalf( "first symbol = %#x, want 0xAA", sym )
    }

    sym, err = table.decodeSymbol( bs )
    if err != nil {
        t.Fatal( err )
    }
    if sym != 0xBB {
        t.Fatalf( "second symbol = %#x, want 0xBB", sym )
    }
}

func TestHuffmanTableRejectsUnknownCode( t *testing.T ) {
    var bits [16]uint8
    bits[0] = 1 // one code of length 1: "0" -> 0x01
    table, err := newHuffTable( bits, []uint8{ 0x01 } )
    if err != nil {
        t.Fatal( err )
    }
    // "1" is never assigned as a prefix at length 1.
    bs, _ := newBitStream( []byte{ 0xFF }, 0 )
    if _, err := table.decodeSymbol( bs ); err == nil {
        t.Fatal( "expected InvalidHuffmanCode for an unassigned prefix" )
    }
}

func TestNewHuffTableRejectsInconsistentLengthCounts( t *testing.T ) {
    var bits [16]uint8
    bits[0] = 3 // three codes of length 1 cannot exist (max 2)
    if _, err := newHuffTable( bits, []uint8{ 1, 2, 3 } ); err == nil {
        t.Fatal( "expected MalformedHuffmanTable for an over-subscribed length" )
    }
}
