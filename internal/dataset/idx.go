package dataset

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// IDX magic numbers for unsigned byte images (3 dims) and labels (1 dim).
const (
	idxImagesMagic = 0x00000803
	idxLabelsMagic = 0x00000801
)

// File names of the MNIST distribution.
const (
	TrainImages = "train-images-idx3-ubyte"
	TrainLabels = "train-labels-idx1-ubyte"
	TestImages  = "t10k-images-idx3-ubyte"
	TestLabels  = "t10k-labels-idx1-ubyte"
)

// maxImageSide bounds the rows and cols an image header may declare.
const maxImageSide = 1 << 16

// Images is the content of an IDX image file.
type Images struct {
	Rows, Cols int
	Pixels     [][]byte // [count][rows*cols]
}

// ReadImages decodes an IDX image file.
//
// Layout (big endian):
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
//
// maxCount > 0 stops after that many images.
func ReadImages(r io.Reader, maxCount int) (*Images, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read image header")
	}
	if header[0] != idxImagesMagic {
		return nil, errors.Errorf("invalid image magic number: got %d, want %d", header[0], idxImagesMagic)
	}

	if header[2] == 0 || header[3] == 0 || header[2] > maxImageSide || header[3] > maxImageSide {
		return nil, errors.Errorf("invalid image size %dx%d", header[2], header[3])
	}
	count, rows, cols := int(header[1]), int(header[2]), int(header[3])
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}

	// Pixels grow as images arrive; count comes from the file and is not
	// trusted for allocation.
	out := &Images{Rows: rows, Cols: cols}
	for i := 0; i < count; i++ {
		img := make([]byte, rows*cols)
		if _, err := io.ReadFull(r, img); err != nil {
			return nil, errors.Wrapf(err, "read image %d", i)
		}
		out.Pixels = append(out.Pixels, img)
	}
	return out, nil
}

// ReadLabels decodes an IDX label file.
//
// Layout (big endian):
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
//
// maxCount > 0 stops after that many labels.
func ReadLabels(r io.Reader, maxCount int) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read label header")
	}
	if header[0] != idxLabelsMagic {
		return nil, errors.Errorf("invalid label magic number: got %d, want %d", header[0], idxLabelsMagic)
	}

	count := int(header[1])
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(count))
	if err != nil {
		return nil, errors.Wrapf(err, "read labels: got %d of %d", n, count)
	}
	return buf.Bytes(), nil
}

// LoadDigits reads the MNIST images and labels under dir and returns a
// one-vs-rest set: target 1 for the given digit, 0 otherwise. Pixels are
// scaled to [0, 1]. Files may be gzip compressed with a .gz suffix.
//
// train selects the training files, otherwise the t10k files are read.
// maxSamples > 0 limits the number of samples.
func LoadDigits(dir string, digit int, train bool, maxSamples int) (*Set, error) {
	if digit < 0 || digit > 9 {
		return nil, errors.Errorf("digit %d outside [0, 9]", digit)
	}
	imageFile, labelFile := TrainImages, TrainLabels
	if !train {
		imageFile, labelFile = TestImages, TestLabels
	}

	var images *Images
	err := withIDXFile(filepath.Join(dir, imageFile), func(r io.Reader) error {
		var err error
		images, err = ReadImages(r, maxSamples)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load images")
	}

	var labels []byte
	err = withIDXFile(filepath.Join(dir, labelFile), func(r io.Reader) error {
		var err error
		labels, err = ReadLabels(r, maxSamples)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load labels")
	}

	if len(images.Pixels) != len(labels) {
		return nil, errors.Errorf("image count (%d) != label count (%d)", len(images.Pixels), len(labels))
	}

	features := images.Rows * images.Cols
	samples := make([]Sample, len(labels))
	for i, px := range images.Pixels {
		x := make([]float64, features)
		for j, p := range px {
			x[j] = float64(p) / 255.0
		}
		y := 0.0
		if int(labels[i]) == digit {
			y = 1
		}
		samples[i] = Sample{X: mat.NewVecDense(features, x), Y: y}
	}
	return NewSet("digits", samples)
}

// withIDXFile opens path, or path+".gz" when path does not exist, and hands
// a buffered (and if needed decompressed) reader to fn.
func withIDXFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
		f, err = os.Open(path)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return errors.Wrapf(err, "gunzip %s", path)
		}
		defer gz.Close()
		r = gz
	}
	return errors.Wrap(fn(r), path)
}
