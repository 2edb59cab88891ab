package generators

import (
	"bytes"
	"crypto/sha256"
	"fmt"
)

const (
	avatarGrid     = 5
	avatarCellSize = 16
)

// Avatar derives a deterministic identicon for a seed: a 5x5 grid of cells,
// mirrored horizontally, coloured from the seed hash. Output is SVG markup.
func Avatar(seed string) ([]byte, error) {
	sum := sha256.Sum256([]byte(seed))

	fg := fmt.Sprintf("#%02x%02x%02x", sum[29], sum[30], sum[31])
	size := avatarGrid * avatarCellSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, size, size)
	fmt.Fprintf(&buf,
		`<rect width="%d" height="%d" fill="#f0f0f0"/>`, size, size)

	// Fill the left three columns from hash bits, mirror them to the right.
	for row := 0; row < avatarGrid; row++ {
		for col := 0; col < (avatarGrid+1)/2; col++ {
			bit := row*((avatarGrid+1)/2) + col
			if sum[bit/8]>>(bit%8)&1 == 0 {
				continue
			}
			fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				col*avatarCellSize, row*avatarCellSize, avatarCellSize, avatarCellSize, fg)
			if mirror := avatarGrid - 1 - col; mirror != col {
				fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
					mirror*avatarCellSize, row*avatarCellSize, avatarCellSize, avatarCellSize, fg)
			}
		}
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}
