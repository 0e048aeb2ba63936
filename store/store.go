// Package store keeps generated atlases and their fonts in a single bbolt
// resource file.
//
// Layout:
//
//	atlases/<name>  PNG-encoded atlas
//	meta/<name>     YAML AtlasMeta describing how the atlas was made
//	fonts/<name>    raw TrueType/OpenType bytes
package store

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v2"

	"github.com/gogpu/textatlas"
)

// ErrNotFound is returned when a named atlas or font is not in the file.
var ErrNotFound = errors.New("store: not found")

var (
	atlasesBucket = []byte("atlases")
	metaBucket    = []byte("meta")
	fontsBucket   = []byte("fonts")
)

// AtlasMeta records how an atlas was generated.
type AtlasMeta struct {
	Name       string   `yaml:"name"`
	Font       string   `yaml:"font"`
	Size       int      `yaml:"size"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Rasterizer string   `yaml:"rasterizer,omitempty"`
	Tint       [3]uint8 `yaml:"tint,flow"`
	Requests   int      `yaml:"requests"`
}

// Store is an open resource file.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the resource file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{atlasesBucket, metaBucket, fontsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the resource file.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutAtlas stores buf as PNG under name together with meta.
// meta.Name, Width and Height are filled in from the arguments.
func (s *Store) PutAtlas(name string, buf *textatlas.PixelBuffer, meta AtlasMeta) error {
	if buf == nil {
		return fmt.Errorf("store: atlas %q: nil buffer", name)
	}

	var pngData bytes.Buffer
	if err := buf.EncodePNG(&pngData); err != nil {
		return fmt.Errorf("store: encode atlas %q: %w", name, err)
	}

	meta.Name = name
	meta.Width = buf.Width()
	meta.Height = buf.Height()
	metaData, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("store: encode meta %q: %w", name, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(atlasesBucket).Put([]byte(name), pngData.Bytes()); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(name), metaData)
	})
	if err != nil {
		return fmt.Errorf("store: put atlas %q: %w", name, err)
	}

	textatlas.Logger().Debug("store: atlas saved", "name", name, "bytes", pngData.Len())
	return nil
}

// Atlas loads the atlas stored under name.
func (s *Store) Atlas(name string) (*image.NRGBA, AtlasMeta, error) {
	var (
		img  *image.NRGBA
		meta AtlasMeta
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(atlasesBucket).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: atlas %q", ErrNotFound, name)
		}

		decoded, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode atlas %q: %w", name, err)
		}
		img = toNRGBA(decoded)

		if metaData := tx.Bucket(metaBucket).Get([]byte(name)); metaData != nil {
			if err := yaml.Unmarshal(metaData, &meta); err != nil {
				return fmt.Errorf("decode meta %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, AtlasMeta{}, err
	}

	return img, meta, nil
}

// toNRGBA returns img as *image.NRGBA. The PNG encoder writes fully opaque
// images as RGB, which decode to a different type.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return n
}

// PutFont stores raw font bytes under name.
func (s *Store) PutFont(name string, data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(fontsBucket).Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("store: put font %q: %w", name, err)
	}
	return nil
}

// Font returns a copy of the font bytes stored under name.
func (s *Store) Font(name string) ([]byte, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(fontsBucket).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: font %q", ErrNotFound, name)
		}
		// bbolt values are only valid inside the transaction.
		data = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Names returns the names of all stored atlases in key order.
func (s *Store) Names() ([]string, error) {
	return s.keys(atlasesBucket)
}

// FontNames returns the names of all stored fonts in key order.
func (s *Store) FontNames() ([]string, error) {
	return s.keys(fontsBucket)
}

func (s *Store) keys(bucket []byte) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", bucket, err)
	}
	return names, nil
}
