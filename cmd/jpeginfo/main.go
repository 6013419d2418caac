// Command jpeginfo reports the geometry of one or more JPEG files without
// fully reconstructing their pixels.
package main

import (
    "flag"
    "fmt"
    "os"

    "github.com/jrm-1535/jpegdec"
)

func main() {
    detailed := flag.Bool( "v", false, "also print per-component sampling factors" )
    flag.Parse()

    if flag.NArg() == 0 {
        fmt.Fprintln( os.Stderr, "usage: jpeginfo [-v] file...")
        os.Exit( 1 )
    }

    status := 0
    for _, path := range flag.Args() {
        if err := report( path, *detailed ); err != nil {
            fmt.Fprintf( os.Stderr, "%s: %v\n", path, err )
            status = 1
        }
    }
    os.Exit( status )
}

func report( path string, detailed bool ) error {
    f, err := os.Open( path )
    if err != nil {
        return err
    }
    defer f.Close()

    fi, err := jpeg.Info( f )
    if err != nil {
        return err
    }

    fmt.Printf( "%s: ", path )
    mode := jpeg.Brief
    if detailed {
        mode = jpeg.Detailed
    }
    _, err = fi.Format( os.Stdout, mode )
    return err
}
