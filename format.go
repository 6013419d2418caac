package jpeg

import (
    "fmt"
    "io"
)

// FormatMode selects how much detail FrameInfo.Format writes: Brief gives a
// one-line summary, Detailed also lists each component's sampling factors.
type FormatMode int

const (
    Brief FormatMode = iota
    Detailed
)

// FrameInfo is a read-only snapshot of a decoded frame's geometry, meant
// for diagnostics (cmd/jpeginfo) rather than for driving further decoding.
type FrameInfo struct {
    Mode          string
    Width, Height int
    NumComponents int
    Components    []ComponentInfo
}

type ComponentInfo struct {
    ID   uint8
    H, V uint8
}

// Info summarizes a parsed Desc's frame, or the zero value if no SOFn was
// ever reached (e.g. the stream errored out before one).
func (jpg *Desc) Info() FrameInfo {
    if jpg.frame == nil {
        return FrameInfo{}
    }
    fs := jpg.frame
    fi := FrameInfo{
        Width: fs.width, Height: fs.height,
        NumComponents: len(fs.components),
    }
    if fs.mode == modeSequential {
        fi.Mode = "baseline sequential"
    } else {
        fi.Mode = "progressive"
    }
    for _, c := range fs.components {
        fi.Components = append( fi.Components, ComponentInfo{ ID: c.id, H: c.hi, V: c.vi } )
    }
    return fi
}

// Format writes a human-readable description of fi to w.
func (fi FrameInfo) Format( w io.Writer, mode FormatMode ) ( int, error ) {
    n, err := fmt.Fprintf( w, "%s, %dx%d, %d component(s)\n",
        fi.Mode, fi.Width, fi.Height, fi.NumComponents )
    if err != nil || mode == Brief {
        return n, err
    }
    for _, c := range fi.Components {
        m, err := fmt.Fprintf( w, "  component %d: sampling %dx%d\n", c.ID, c.H, c.V )
        n += m
        if err != nil {
            return n, err
        }
    }
    return n, nil
}
