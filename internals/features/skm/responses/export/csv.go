package export

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const ContentType = "text/csv; charset=utf-8"

type cell struct {
	v      string
	quoted bool
}

func text(v string) cell { return cell{v: v, quoted: true} }
func num(v string) cell  { return cell{v: v} }

// WriteCSV menulis header lalu baris. Semua field teks dikutip dengan "
// digandakan; rating dan rata-rata ditulis polos, sel kosong tetap kosong.
func WriteCSV(w io.Writer, rep Report) error {
	bw := bufio.NewWriter(w)

	header := rep.Header()
	cells := make([]cell, len(header))
	for i, h := range header {
		cells[i] = text(h)
	}
	if err := writeLine(bw, cells); err != nil {
		return err
	}

	for _, r := range rep.Rows {
		cells = cells[:0]
		cells = append(cells, text(r.RequestID), text(r.Name), text(r.Email), text(r.RequestType))
		for _, v := range r.Ratings {
			cells = append(cells, num(v))
		}
		cells = append(cells, num(r.Average), text(r.Feedback), text(r.Date))
		if err := writeLine(bw, cells); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, cells []cell) error {
	for i, c := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		v := norm.NFC.String(c.v)
		if c.quoted {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(v); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}
