package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sunshineplan/stereoconv"
	"github.com/sunshineplan/tiff"
	"github.com/sunshineplan/utils/log"
)

var tiffImage = regexp.MustCompile(`(?i)\.tiff?$`)

// open loads a view. TIFF files the registered decoder rejects are retried
// with the tiff package directly.
func open(file string) (stereoconv.Source, error) {
	src, err := stereoconv.OpenSource(file)
	if err != nil && tiffImage.MatchString(file) {
		f, err := os.Open(file)
		if err != nil {
			return stereoconv.Source{}, err
		}
		defer f.Close()
		img, err := tiff.Decode(f)
		if err != nil {
			return stereoconv.Source{}, err
		}
		return stereoconv.NewSource(img), nil
	}
	return src, err
}

func sources(args []string) (left, right stereoconv.Source, outputs []string, err error) {
	switch {
	case *mpo != "":
		outputs = args
		left, right, err = stereoconv.OpenMPO(*mpo)
	case *sbs != "":
		outputs = args
		var joined stereoconv.Source
		if joined, err = open(*sbs); err != nil {
			return
		}
		left, right, err = stereoconv.SplitSource(joined, mode())
	default:
		if len(args) < 2 {
			err = errors.New("LEFT and RIGHT images are required")
			return
		}
		outputs = args[2:]
		if left, err = open(args[0]); err != nil {
			log.Error("Failed to open image", "image", args[0], "error", err)
			return
		}
		if right, err = open(args[1]); err != nil {
			log.Error("Failed to open image", "image", args[1], "error", err)
		}
	}
	if err == nil && (len(outputs) == 0 || len(outputs) > 2) {
		err = errors.New("one or two output images are required")
	}
	return
}

// output is written to a temporary file and moved into place by commit.
type output struct {
	*os.File
	name string
}

func create(name string) (*output, error) {
	if _, err := os.Stat(name); err == nil {
		if !*force {
			return nil, fmt.Errorf("%s already exists", name)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Error("Failed to get FileInfo", "name", name, "error", err)
		return nil, err
	}
	path := filepath.Dir(name)
	if err := os.MkdirAll(path, 0755); err != nil {
		log.Error("Failed to create directory", "path", path, "error", err)
		return nil, err
	}
	f, err := os.CreateTemp(path, "*.tmp")
	if err != nil {
		log.Error("Failed to create temporary file", "path", path, "error", err)
		return nil, err
	}
	return &output{f, name}, nil
}

func (f *output) commit() error {
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), f.name); err != nil {
		log.Error("Failed to move file", "from", f.Name(), "to", f.name, "error", err)
		return err
	}
	return nil
}

func (f *output) discard() {
	f.Close()
	os.Remove(f.Name())
}
