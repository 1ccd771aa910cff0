package waves

import (
	"bufio"
	"io"
	"strconv"
)

// WriteHeights writes heights as text, one grid row per line with values
// separated by spaces.
func WriteHeights(w io.Writer, heights []float32, cols int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for i, v := range heights {
		if i%cols != 0 {
			bw.WriteByte(' ')
		}
		buf = strconv.AppendFloat(buf[:0], float64(v), 'f', 6, 32)
		bw.Write(buf)
		if i%cols == cols-1 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
