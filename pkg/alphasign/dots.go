package alphasign

import (
	"fmt"

	"github.com/Lucretiel/alphasign/internal/packet"
)

// Pixel color codes for DOTS pictures.
const (
	DotBlank byte = '0'
	DotRed   byte = '1'
	DotGreen byte = '2'
	DotAmber byte = '3'
)

const (
	writeSmallDots = 'I'
	callDots       = 0x14
	cr             = 0x0D

	maxDotsRows    = 31
	maxDotsColumns = 255
)

// Dots is a SMALL DOTS picture: a row-major grid of pixel color codes
// stored on the sign under a single-character label.
type Dots struct {
	Label   byte
	Rows    int
	Columns int
	data    []byte
}

// NewDots returns a blank picture. The size field packs rows into the high
// byte and columns into the low byte, so rows are clamped to 1-31 and
// columns to 1-255.
func NewDots(rows, columns int, label byte) *Dots {
	if rows < 1 {
		rows = 1
	} else if rows > maxDotsRows {
		rows = maxDotsRows
	}
	if columns < 1 {
		columns = 1
	} else if columns > maxDotsColumns {
		columns = maxDotsColumns
	}
	d := &Dots{Label: label, Rows: rows, Columns: columns, data: make([]byte, rows*columns)}
	for i := range d.data {
		d.data[i] = DotBlank
	}
	return d
}

// Size returns the packed base-256 size the sign stores for this picture:
// rows in the high byte, columns in the low byte.
func (d *Dots) Size() uint16 {
	return uint16(d.Rows)*256 + uint16(d.Columns)
}

// Descriptor returns the allocation descriptor for this picture.
func (d *Dots) Descriptor() FileDescriptor {
	return FileDescriptor{Label: d.Label, Size: d.Size()}
}

// SetPixel sets the color of one pixel.
func (d *Dots) SetPixel(row, column int, color byte) error {
	i, err := d.index(row, column)
	if err != nil {
		return err
	}
	d.data[i] = color
	return nil
}

// Pixel returns the color of one pixel.
func (d *Dots) Pixel(row, column int) (byte, error) {
	i, err := d.index(row, column)
	if err != nil {
		return 0, err
	}
	return d.data[i], nil
}

func (d *Dots) index(row, column int) (int, error) {
	if row < 0 || row >= d.Rows {
		return 0, fmt.Errorf("row %d out of range [0,%d)", row, d.Rows)
	}
	if column < 0 || column >= d.Columns {
		return 0, fmt.Errorf("column %d out of range [0,%d)", column, d.Columns)
	}
	return row*d.Columns + column, nil
}

// Call returns the control sequence that embeds this picture in a TEXT
// file.
func (d *Dots) Call() []byte {
	return []byte{callDots, d.Label}
}

// Packet renders the write command for the picture: label, packed size,
// then each pixel row terminated with a carriage return.
func (d *Dots) Packet() []byte {
	payload := make([]byte, 0, 6+d.Rows*(d.Columns+1))
	payload = append(payload, writeSmallDots, d.Label)
	payload = append(payload, fmt.Sprintf("%04X", d.Size())...)
	for r := 0; r < d.Rows; r++ {
		payload = append(payload, d.data[r*d.Columns:(r+1)*d.Columns]...)
		payload = append(payload, cr)
	}
	return packet.Build(payload)
}
