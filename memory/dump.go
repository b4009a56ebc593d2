package memory

import (
	"bufio"
	"fmt"
	"io"
)

// DUMP_WIDTH is the default number of bytes per dump line.
const DUMP_WIDTH = 8

// Dump writes a hex listing of the memory to w, width bytes per line.
// Each line is prefixed with the address of its first byte.
func (mem *Memory) Dump(w io.Writer, width int) (err error) {
	if width <= 0 {
		width = DUMP_WIDTH
	}

	out := bufio.NewWriter(w)

	for addr := 0; addr < len(mem.data); addr += width {
		fmt.Fprintf(out, "0x%X:\t", addr)
		for _, b := range mem.data[addr:min(addr+width, len(mem.data))] {
			fmt.Fprintf(out, "%02X ", b)
		}
		out.WriteByte('\n')
	}

	return out.Flush()
}
