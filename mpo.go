package stereoconv

import (
	"errors"
	"fmt"
	"io"
	"os"

	jseg "github.com/garyhouston/jpegsegs"
	tiff "github.com/garyhouston/tiff66"
)

// ErrNotMPO is returned when a JPEG stream has no multi-picture index.
var ErrNotMPO = errors.New("no MPF index found")

type mpfEntry struct {
	offset, size int64
}

// mpfIndex scans the first image in r for its APP2 MPF segment and returns
// the absolute position and size of every image listed in it.
func mpfIndex(r io.ReadSeeker) ([]mpfEntry, error) {
	scanner, err := jseg.NewScanner(r)
	if err != nil {
		return nil, err
	}
	for {
		marker, buf, err := scanner.Scan()
		if err != nil {
			return nil, err
		}
		if marker == jseg.SOS {
			return nil, ErrNotMPO
		}
		if marker != jseg.APP0+2 {
			continue
		}
		isMPF, next := jseg.GetMPFHeader(buf)
		if !isMPF {
			continue
		}
		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		// MPF offsets count from the TIFF header, which follows the 4 byte MPF header.
		base := pos - int64(len(buf)) + int64(next)
		tree, err := jseg.GetMPFTree(buf[next:])
		if err != nil {
			return nil, err
		}
		if tree.Space != tiff.MPFIndexSpace {
			return nil, ErrNotMPO
		}
		return mpfEntries(tree, base), nil
	}
}

func mpfEntries(tree *tiff.IFDNode, base int64) (entries []mpfEntry) {
	order := tree.Order
	var count uint32
	for _, f := range tree.Fields {
		switch f.Tag {
		case jseg.MPFNumberOfImages:
			count = f.Long(0, order)
		case jseg.MPFEntry:
			n := uint32(len(f.Data) / 16)
			if count == 0 || count > n {
				count = n
			}
			for i := range count {
				e := mpfEntry{size: int64(f.Long(i*4+1, order))}
				if offset := f.Long(i*4+2, order); offset > 0 {
					e.offset = base + int64(offset)
				}
				entries = append(entries, e)
			}
		}
	}
	return
}

// DecodeMPO reads the first two images of a Multi-Picture Object file,
// as written by stereo cameras, and returns them as left and right sources.
func DecodeMPO(r io.ReaderAt, size int64) (left, right Source, err error) {
	entries, err := mpfIndex(io.NewSectionReader(r, 0, size))
	if err != nil {
		return
	}
	if len(entries) < 2 {
		err = fmt.Errorf("%w: %d image(s) in MPF index", ErrNotMPO, len(entries))
		return
	}

	var srcs [2]Source
	for i, e := range entries[:2] {
		if e.offset+e.size > size {
			err = fmt.Errorf("MPF image %d exceeds file size", i+1)
			return
		}
		if srcs[i], err = DecodeSource(io.NewSectionReader(r, e.offset, e.size)); err != nil {
			err = fmt.Errorf("decode MPF image %d: %w", i+1, err)
			return
		}
	}
	return srcs[0], srcs[1], nil
}

// OpenMPO loads the left and right views from an MPO file.
func OpenMPO(file string) (left, right Source, err error) {
	f, err := os.Open(file)
	if err != nil {
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return
	}
	return DecodeMPO(f, info.Size())
}
