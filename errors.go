package jpeg

import "fmt"

// ErrorKind enumerates the flat error taxonomy a decode can surface.
type ErrorKind int

const (
    ErrUnexpectedEndOfInput ErrorKind = iota
    ErrUnexpectedEndOfScan
    ErrBadMagic
    ErrUnsupportedMarker
    ErrMalformedHuffmanTable
    ErrInvalidHuffmanCode
    ErrMalformedQuantizationTable
    ErrUnsupportedPrecision
    ErrTooManyComponents
    ErrIllegalSpectralSelection
    ErrMissingHuffmanTable
    ErrMissingQuantizationTable
    ErrInvalidBlockOverflow
    ErrInvalidAcRefineSymbol
)

var errorKindNames = [...]string{
    "UnexpectedEndOfInput", "UnexpectedEndOfScan", "BadMagic",
    "UnsupportedMarker", "MalformedHuffmanTable", "InvalidHuffmanCode",
    "MalformedQuantizationTable", "UnsupportedPrecision", "TooManyComponents",
    "IllegalSpectralSelection", "MissingHuffmanTable", "MissingQuantizationTable",
    "InvalidBlockOverflow", "InvalidAcRefineSymbol",
}

func (k ErrorKind) String() string {
    if int(k) < 0 || int(k) >= len(errorKindNames) {
        return "UnknownError"
    }
    return errorKindNames[k]
}

// DecodeError carries the context the spec requires alongside each error:
// the byte offset at which it was detected, and, when applicable, the
// component and MCU coordinates being processed.
type DecodeError struct {
    Kind        ErrorKind
    Offset      int
    ComponentID int  // -1 if not applicable
    MCUx, MCUy  int  // -1, -1 if not applicable
    Cause       error
}

func (e *DecodeError) Error() string {
    s := fmt.Sprintf( "jpeg: %s at offset %#x", e.Kind, e.Offset )
    if e.ComponentID >= 0 {
        s += fmt.Sprintf( ", component %d", e.ComponentID )
    }
    if e.MCUx >= 0 && e.MCUy >= 0 {
        s += fmt.Sprintf( ", mcu (%d,%d)", e.MCUx, e.MCUy )
    }
    if e.Cause != nil {
        s += fmt.Sprintf( ": %v", e.Cause )
    }
    return s
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func newErr( kind ErrorKind, offset int ) *DecodeError {
    return &DecodeError{ Kind: kind, Offset: offset, ComponentID: -1, MCUx: -1, MCUy: -1 }
}

func (e *DecodeError) withComponent( id int ) *DecodeError {
    e.ComponentID = id
    return e
}

func (e *DecodeError) withMCU( x, y int ) *DecodeError {
    e.MCUx, e.MCUy = x, y
    return e
}

func (e *DecodeError) withCause( err error ) *DecodeError {
    e.Cause = err
    return e
}
