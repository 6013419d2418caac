package jpeg

// JPEG marker definitions, named in the teacher's style (leading
// underscore keeps them undocumented since they are wire constants, not
// API). Only the markers this decoder recognises or must explicitly
// reject are enumerated individually; everything else in the 0xFFC0-0xFFFE
// range is handled generically.
const (
    _SOF0 = 0xC0 // baseline sequential DCT
    _SOF2 = 0xC2 // progressive DCT
    _DHT  = 0xC4
    _RST0 = 0xD0
    _RST7 = 0xD7
    _SOI  = 0xD8
    _EOI  = 0xD9
    _SOS  = 0xDA
    _DQT  = 0xDB
    _DRI  = 0xDD
    _APP0 = 0xE0
    _APP1 = 0xE1
    _COM  = 0xFE
)

// unsupportedSOF reports whether marker is a Start-Of-Frame variant this
// decoder explicitly declines (extended sequential, lossless, arithmetic,
// differential/hierarchical, all out of scope per spec §1).
func unsupportedSOF( marker byte ) bool {
    switch marker {
    case 0xC1, 0xC3, 0xC5, 0xC6, 0xC7, 0xC9, 0xCA, 0xCB, 0xCD, 0xCE, 0xCF:
        return true
    }
    return false
}

func isRST( marker byte ) bool {
    return marker >= _RST0 && marker <= _RST7
}

// parser walks the container, dispatching each segment to the appropriate
// table/frame/scan handler, and accumulates the decode result onto Desc.
type parser struct {
    jpg  *Desc
    data []byte
    pos  int
}

func (p *parser) errAt( kind ErrorKind ) *DecodeError {
    return newErr( kind, p.pos )
}

// readMarker skips any 0xFF fill bytes and returns the marker byte
// following the next 0xFF, or an error if the stream is exhausted or the
// framing byte isn't 0xFF.
func (p *parser) readMarker() ( byte, error ) {
    if p.pos+1 >= len(p.data) {
        return 0, p.errAt( ErrUnexpectedEndOfInput )
    }
    if p.data[p.pos] != 0xFF {
        return 0, p.errAt( ErrBadMagic )
    }
    p.pos++
    for p.pos < len(p.data) && p.data[p.pos] == 0xFF { // fill bytes
        p.pos++
    }
    if p.pos >= len(p.data) {
        return 0, p.errAt( ErrUnexpectedEndOfInput )
    }
    m := p.data[p.pos]
    p.pos++
    return m, nil
}

// segmentLength reads the big-endian 16-bit length prefix (inclusive of
// itself) of the payload-carrying segment starting at p.pos, and returns
// the payload length (excluding the two length bytes).
func (p *parser) segmentLength() ( int, error ) {
    if p.pos+2 > len(p.data) {
        return 0, p.errAt( ErrUnexpectedEndOfInput )
    }
    l := int(p.data[p.pos])<<8 | int(p.data[p.pos+1])
    if l < 2 || p.pos+l > len(p.data) {
        return 0, p.errAt( ErrUnexpectedEndOfInput )
    }
    return l - 2, nil
}

// parse runs the whole container walk: SOI, tables and frame headers in any
// order, one or more SOS+entropy-segment pairs, EOI.
func parse( data []byte ) ( *Desc, error ) {
    p := &parser{ jpg: new(Desc), data: data }
    jpg := p.jpg

    marker, err := p.readMarker()
    if err != nil {
        return jpg, err
    }
    if marker != _SOI {
        return jpg, p.errAt( ErrBadMagic )
    }

    for {
        marker, err = p.readMarker()
        if err != nil {
            return jpg, err
        }

        if marker == _EOI {
            return jpg, nil
        }
        if isRST( marker ) || marker == _DRI {
            return jpg, p.errAt( ErrUnsupportedMarker )
        }
        if unsupportedSOF( marker ) {
            return jpg, p.errAt( ErrUnsupportedMarker )
        }

        switch marker {
        case _SOF0:
            err = p.startOfFrame( modeSequential )
        case _SOF2:
            err = p.startOfFrame( modeProgressive )
        case _DQT:
            err = p.defineQuantizationTables()
        case _DHT:
            err = p.defineHuffmanTables()
        case _APP1:
            err = p.app1()
        case _SOS:
            err = p.startOfScan()
        case _APP0, _COM:
            err = p.skipSegment()
        default:
            // Any other non-entropy segment FF xx <len> <payload> whose
            // marker isn't structurally required is skipped wholesale,
            // per spec §9's open question resolution.
            err = p.skipSegment()
        }
        if err != nil {
            return jpg, err
        }
    }
}

func (p *parser) skipSegment() error {
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    p.pos += 2 + n
    return nil
}

func (p *parser) defineQuantizationTables() error {
    start := p.pos
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    end := start + 2 + n
    p.pos = start + 2

    for p.pos < end {
        pq := p.data[p.pos] >> 4
        tq := p.data[p.pos] & 0x0F
        if pq > 1 || tq > 3 {
            return p.errAt( ErrMalformedQuantizationTable )
        }
        p.pos++
        qt := &quantTable{ precision: 8 * (pq + 1) }
        for i := 0; i < 64; i++ {
            if p.pos >= end {
                return p.errAt( ErrMalformedQuantizationTable )
            }
            v := uint16(p.data[p.pos])
            p.pos++
            if pq != 0 {
                if p.pos >= end {
                    return p.errAt( ErrMalformedQuantizationTable )
                }
                v = v<<8 | uint16(p.data[p.pos])
                p.pos++
            }
            qt.values[i] = v
        }
        p.jpg.quantTables[tq] = qt
    }
    if p.pos != end {
        return p.errAt( ErrMalformedQuantizationTable )
    }
    return nil
}

func (p *parser) defineHuffmanTables() error {
    start := p.pos
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    end := start + 2 + n
    p.pos = start + 2

    for p.pos < end {
        if p.pos >= end {
            return p.errAt( ErrMalformedHuffmanTable )
        }
        tc := p.data[p.pos] >> 4
        th := p.data[p.pos] & 0x0F
        if tc > 1 || th > 3 {
            return p.errAt( ErrMalformedHuffmanTable )
        }
        p.pos++
        if p.pos+16 > end {
            return p.errAt( ErrMalformedHuffmanTable )
        }
        var bits [16]uint8
        total := 0
        for i := 0; i < 16; i++ {
            bits[i] = p.data[p.pos+i]
            total += int(bits[i])
        }
        p.pos += 16
        if p.pos+total > end {
            return p.errAt( ErrMalformedHuffmanTable )
        }
        vals := make( []uint8, total )
        copy( vals, p.data[p.pos:p.pos+total] )
        p.pos += total

        table, err := newHuffTable( bits, vals )
        if err != nil {
            return err
        }
        if tc == 0 {
            p.jpg.dcTables[th] = table
        } else {
            p.jpg.acTables[th] = table
        }
    }
    if p.pos != end {
        return p.errAt( ErrMalformedHuffmanTable )
    }
    return nil
}

func (p *parser) startOfFrame( mode frameMode ) error {
    start := p.pos
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    end := start + 2 + n
    p.pos = start + 2

    if p.pos+6 > end {
        return p.errAt( ErrUnexpectedEndOfInput )
    }
    precision := p.data[p.pos]
    if precision != 8 {
        return p.errAt( ErrUnsupportedPrecision )
    }
    height := int(p.data[p.pos+1])<<8 | int(p.data[p.pos+2])
    width := int(p.data[p.pos+3])<<8 | int(p.data[p.pos+4])
    nf := int(p.data[p.pos+5])
    p.pos += 6

    if nf <= 0 || nf > 4 {
        return p.errAt( ErrTooManyComponents )
    }
    if p.pos+3*nf > end {
        return p.errAt( ErrUnexpectedEndOfInput )
    }

    comps := make( []rawComponent, nf )
    for i := 0; i < nf; i++ {
        comps[i] = rawComponent{
            id: p.data[p.pos],
            h:  p.data[p.pos+1] >> 4,
            v:  p.data[p.pos+1] & 0x0F,
            q:  p.data[p.pos+2],
        }
        p.pos += 3
    }

    fs, err := newFrameState( mode, precision, height, width, comps, p.jpg.quantTables )
    if err != nil {
        return err
    }
    p.jpg.frame = fs
    p.pos = end
    return nil
}

func (p *parser) app1() error {
    start := p.pos
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    end := start + 2 + n
    body := start + 2
    if n >= 6 && string(p.data[body:body+5]) == "Exif\x00" {
        p.jpg.orientation = parseExifOrientation( p.data[body+6:end] )
    }
    p.pos = end
    return nil
}

// startOfScan reads the SOS header, then hands off to the scan decoder,
// which consumes the entropy-coded segment and repositions p.pos at the
// marker that terminates it.
func (p *parser) startOfScan() error {
    if p.jpg.frame == nil {
        return p.errAt( ErrIllegalSpectralSelection )
    }
    // Hand the frame the tables defined so far, whether their DQT/DHT
    // segments came before or after the frame header.
    p.jpg.frame.quantTables = p.jpg.quantTables
    p.jpg.frame.dcTables = p.jpg.dcTables
    p.jpg.frame.acTables = p.jpg.acTables
    start := p.pos
    n, err := p.segmentLength()
    if err != nil {
        return err
    }
    end := start + 2 + n
    p.pos = start + 2

    if p.pos >= end {
        return p.errAt( ErrUnexpectedEndOfInput )
    }
    ns := int(p.data[p.pos])
    p.pos++
    if ns < 1 || ns > 4 {
        return p.errAt( ErrTooManyComponents )
    }
    if p.pos+2*ns+3 > end {
        return p.errAt( ErrUnexpectedEndOfInput )
    }

    hdr := scanHeader{ comps: make( []scanComponentRef, ns ) }
    for i := 0; i < ns; i++ {
        hdr.comps[i] = scanComponentRef{
            id:    p.data[p.pos],
            dcSel: p.data[p.pos+1] >> 4,
            acSel: p.data[p.pos+1] & 0x0F,
        }
        p.pos += 2
    }
    hdr.ss = p.data[p.pos]
    hdr.se = p.data[p.pos+1]
    hdr.ah = p.data[p.pos+2] >> 4
    hdr.al = p.data[p.pos+2] & 0x0F
    p.pos += 3

    if p.pos != end {
        return p.errAt( ErrUnexpectedEndOfInput )
    }

    if err := validateScanHeader( p.jpg.frame, &hdr ); err != nil {
        return err
    }

    sd, err := newScanDecoder( p.jpg.frame, &hdr, p.data, p.pos )
    if err != nil {
        return err
    }
    nextPos, err := sd.decode()
    if err != nil {
        return err
    }
    p.pos = nextPos
    return nil
}
