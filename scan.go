package jpeg

// scanComponentRef binds one component, by id, to a DC/AC table pair for
// the duration of a scan.
type scanComponentRef struct {
    id           uint8
    dcSel, acSel uint8
}

// scanHeader is the parsed SOS payload.
type scanHeader struct {
    comps  []scanComponentRef
    ss, se uint8
    ah, al uint8
}

func validateScanHeader( fs *frameState, h *scanHeader ) error {
    if fs.mode == modeSequential {
        if h.ss != 0 || h.se != 63 || h.ah != 0 || h.al != 0 {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
    } else {
        if h.ss > 63 || h.se > 63 || h.ss > h.se {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
        if h.ss == 0 && h.se != 0 {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
        if h.ss > 0 && len(h.comps) != 1 {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
    }
    for _, sc := range h.comps {
        if _, ok := fs.component( sc.id ); !ok {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
    }
    return nil
}

// scanDecoder runs exactly one of the five sub-routines (matched by frame
// mode and header fields) across every data unit the scan covers, in MCU
// or plain raster order, mutating the frame's coefficient planes in place.
type scanDecoder struct {
    fs  *frameState
    hdr *scanHeader
    bs  *bitStream

    comps   []*component // scan-bound components, in header order
    eobRun  int           // carried across data units within the scan, AC progressive only
}

// newScanDecoder builds the bit-level view of the entropy-coded segment
// starting at offset. It never fails by itself; table binding, which can
// fail with MissingHuffmanTable, happens in bind() once decode() runs.
func newScanDecoder( fs *frameState, hdr *scanHeader, data []byte, offset int ) ( *scanDecoder, error ) {
    bs, _ := newBitStream( data, offset )
    return &scanDecoder{ fs: fs, hdr: hdr, bs: bs }, nil
}

func (sd *scanDecoder) bind() error {
    sd.comps = make( []*component, len(sd.hdr.comps) )
    for i, sc := range sd.hdr.comps {
        c, ok := sd.fs.component( sc.id )
        if !ok {
            return newErr( ErrIllegalSpectralSelection, 0 )
        }
        needDC := sd.fs.mode == modeSequential || sd.hdr.ss == 0
        needAC := sd.fs.mode == modeSequential || sd.hdr.ss > 0
        if needDC {
            t := sd.fs.dcTables[sc.dcSel]
            if t == nil {
                return newErr( ErrMissingHuffmanTable, 0 )
            }
            c.dcTable = t
        }
        if needAC {
            t := sd.fs.acTables[sc.acSel]
            if t == nil {
                return newErr( ErrMissingHuffmanTable, 0 )
            }
            c.acTable = t
        }
        c.prevDC = 0
        sd.comps[i] = c
    }
    if len(sd.comps) > 1 {
        sum := 0
        for _, c := range sd.comps {
            sum += int(c.hi) * int(c.vi)
        }
        if sum > 10 {
            return newErr( ErrTooManyComponents, 0 )
        }
    }
    return nil
}

// decode runs the scan to completion and returns the offset of the byte
// following the entropy-coded segment (where the terminating marker's 0xFF
// begins).
func (sd *scanDecoder) decode() ( int, error ) {
    if err := sd.bind(); err != nil {
        return 0, err
    }
    sd.eobRun = 0

    var unit func( c *component, du *dataUnit ) error
    switch {
    case sd.fs.mode == modeSequential:
        unit = sd.sequentialUnit
    case sd.hdr.ss == 0 && sd.hdr.ah == 0:
        unit = sd.dcFirstUnit
    case sd.hdr.ss == 0 && sd.hdr.ah > 0:
        unit = sd.dcRefineUnit
    case sd.hdr.ss > 0 && sd.hdr.ah == 0:
        unit = sd.acFirstUnit
    default:
        unit = sd.acRefineUnit
    }

    if len(sd.comps) > 1 {
        if err := sd.walkInterleaved( unit ); err != nil {
            return 0, err
        }
    } else {
        if err := sd.walkNonInterleaved( sd.comps[0], unit ); err != nil {
            return 0, err
        }
    }
    return sd.bs.nextMarkerOffset(), nil
}

func (sd *scanDecoder) walkInterleaved( unit func( *component, *dataUnit ) error ) error {
    for mcuY := 0; mcuY < sd.fs.numMCUsY; mcuY++ {
        for mcuX := 0; mcuX < sd.fs.numMCUsX; mcuX++ {
            for _, c := range sd.comps {
                for u := 0; u < int(c.vi); u++ {
                    for v := 0; v < int(c.hi); v++ {
                        row := int(c.vi)*mcuY + u
                        col := int(c.hi)*mcuX + v
                        if row >= c.blocksPerCol || col >= c.blocksPerLine {
                            continue
                        }
                        if err := unit( c, c.block( row, col ) ); err != nil {
                            return err
                        }
                    }
                }
            }
        }
    }
    return nil
}

func (sd *scanDecoder) walkNonInterleaved( c *component, unit func( *component, *dataUnit ) error ) error {
    for row := 0; row < c.blocksPerCol; row++ {
        for col := 0; col < c.blocksPerLine; col++ {
            if err := unit( c, c.block( row, col ) ); err != nil {
                return err
            }
        }
    }
    return nil
}

func (sd *scanDecoder) sequentialUnit( c *component, du *dataUnit ) error {
    t, err := c.dcTable.decodeSymbol( sd.bs )
    if err != nil {
        return err
    }
    diff, err := sd.bs.takeExtended( t )
    if err != nil {
        return err
    }
    c.prevDC += int32(diff)
    du[0] = c.prevDC

    k := 1
    for k <= 63 {
        rs, err := c.acTable.decodeSymbol( sd.bs )
        if err != nil {
            return err
        }
        r := int(rs >> 4)
        s := rs & 0xF
        if rs == 0x00 {
            break
        }
        if rs == 0xF0 {
            k += 16
            if k > 63 {
                return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
            }
            continue
        }
        k += r
        if k > 63 {
            return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
        }
        v, err := sd.bs.takeExtended( s )
        if err != nil {
            return err
        }
        du[k] = int32(v)
        k++
    }
    if k > 64 {
        return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
    }
    return nil
}

func (sd *scanDecoder) dcFirstUnit( c *component, du *dataUnit ) error {
    t, err := c.dcTable.decodeSymbol( sd.bs )
    if err != nil {
        return err
    }
    diff, err := sd.bs.takeExtended( t )
    if err != nil {
        return err
    }
    c.prevDC += int32(diff)
    du[0] = c.prevDC << sd.hdr.al
    return nil
}

func (sd *scanDecoder) dcRefineUnit( c *component, du *dataUnit ) error {
    bit, err := sd.bs.takeBit()
    if err != nil {
        return err
    }
    du[0] |= int32(bit) << sd.hdr.al
    return nil
}

func (sd *scanDecoder) acFirstUnit( c *component, du *dataUnit ) error {
    if sd.eobRun > 0 {
        sd.eobRun--
        return nil
    }
    k := int(sd.hdr.ss)
    se := int(sd.hdr.se)
    for k <= se {
        rs, err := c.acTable.decodeSymbol( sd.bs )
        if err != nil {
            return err
        }
        r := int(rs >> 4)
        s := rs & 0xF
        if s == 0 {
            if r == 15 {
                k += 16
                if k > se {
                    return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
                }
                continue
            }
            bits, err := sd.bs.takeBits( uint8(r) )
            if err != nil {
                return err
            }
            sd.eobRun = ( 1 << uint(r) ) - 1 + bits
            return nil
        }
        k += r
        if k > se {
            return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
        }
        v, err := sd.bs.takeExtended( s )
        if err != nil {
            return err
        }
        du[k] = int32(v) << sd.hdr.al
        k++
    }
    return nil
}

func refineCoeff( du *dataUnit, k int, al uint8 ) {
    if du[k] > 0 {
        du[k] += 1 << al
    } else if du[k] < 0 {
        du[k] -= 1 << al
    }
}

func (sd *scanDecoder) acRefineUnit( c *component, du *dataUnit ) error {
    se := int(sd.hdr.se)
    al := sd.hdr.al

    if sd.eobRun > 0 {
        for k := int(sd.hdr.ss); k <= se; k++ {
            if du[k] != 0 {
                if err := sd.refineBit( du, k, al ); err != nil {
                    return err
                }
            }
        }
        sd.eobRun--
        return nil
    }

    k := int(sd.hdr.ss)
    for {
        rs, err := c.acTable.decodeSymbol( sd.bs )
        if err != nil {
            return err
        }
        r := int(rs >> 4)
        s := rs & 0xF

        switch {
        case s == 1:
            signBit, err := sd.bs.takeBit()
            if err != nil {
                return err
            }
            var val int32
            if signBit == 1 {
                val = 1 << al
            } else {
                val = -( 1 << al )
            }
            for r > 0 || du[k] != 0 {
                if k > se {
                    return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
                }
                if du[k] != 0 {
                    if err := sd.refineBit( du, k, al ); err != nil {
                        return err
                    }
                } else {
                    r--
                }
                k++
            }
            if k > se {
                return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
            }
            du[k] = val
            k++

        case s == 0:
            if r == 15 {
                count := 16
                for count > 0 {
                    if k > se {
                        return newErr( ErrInvalidBlockOverflow, sd.bs.byteIndex )
                    }
                    if du[k] != 0 {
                        if err := sd.refineBit( du, k, al ); err != nil {
                            return err
                        }
                    } else {
                        count--
                    }
                    k++
                }
            } else {
                bits, err := sd.bs.takeBits( uint8(r) )
                if err != nil {
                    return err
                }
                newrun := ( 1 << uint(r) ) + bits
                for ; k <= se; k++ {
                    if du[k] != 0 {
                        if err := sd.refineBit( du, k, al ); err != nil {
                            return err
                        }
                    }
                }
                sd.eobRun = newrun - 1
                return nil
            }

        default:
            return newErr( ErrInvalidAcRefineSymbol, sd.bs.byteIndex )
        }

        if k > se {
            return nil
        }
    }
}

func (sd *scanDecoder) refineBit( du *dataUnit, k int, al uint8 ) error {
    bit, err := sd.bs.takeBit()
    if err != nil {
        return err
    }
    if bit == 1 {
        refineCoeff( du, k, al )
    }
    return nil
}
