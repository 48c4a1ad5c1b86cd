package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

var wib = time.FixedZone("WIB", 7*3600)

func TestAggregateSparseAndOrdered(t *testing.T) {
	r1, r2 := uuid.New(), uuid.New()
	done := time.Date(2025, 2, 3, 2, 30, 0, 0, time.UTC)

	src := []Source{
		{RequestID: r2, FullName: "Budi", QuestionCode: "U1", Rating: 4, SkmRating: f64(4.5), SkmCompletedAt: &done},
		{RequestID: r1, FullName: "Ani", QuestionCode: "U2", Rating: 3},
		{RequestID: r2, FullName: "Budi", QuestionCode: "U2", Rating: 5, SkmRating: f64(4.5), SkmCompletedAt: &done},
		{RequestID: r1, FullName: "Ani", QuestionCode: "U1", Rating: 2},
		{RequestID: r1, FullName: "Ani", QuestionCode: "X9", Rating: 1},
	}
	rep := Aggregate([]string{"U1", "U2", "U3"}, src, wib)

	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	if rep.Rows[0].RequestID != r2.String() || rep.Rows[1].RequestID != r1.String() {
		t.Fatal("rows not in first-seen order")
	}
	if got := strings.Join(rep.Rows[0].Ratings, "|"); got != "4|5|" {
		t.Fatalf("budi ratings = %q", got)
	}
	if got := strings.Join(rep.Rows[1].Ratings, "|"); got != "2|3|" {
		t.Fatalf("ani ratings = %q", got)
	}
	if rep.Rows[0].Average != "4.5" || rep.Rows[0].Date != "2025-02-03 09:30" {
		t.Fatalf("verbatim fields wrong: %+v", rep.Rows[0])
	}
	if rep.Rows[1].Average != "" || rep.Rows[1].Date != "" {
		t.Fatalf("missing precomputed fields should be empty: %+v", rep.Rows[1])
	}
}

func TestWriteCSV(t *testing.T) {
	id := uuid.MustParse("7b0e1c7a-4a55-4b0c-9f0e-0a1b2c3d4e5f")
	done := time.Date(2025, 2, 3, 2, 30, 0, 0, time.UTC)
	rep := Aggregate([]string{"U1", "U2", "U3"}, []Source{
		{RequestID: id, FullName: `Siti "Ina"`, Email: "siti@example.id", RequestType: "Data Iklim",
			QuestionCode: "U1", Rating: 5, SkmRating: f64(4), SkmFeedback: str("Cepat, ramah"), SkmCompletedAt: &done},
		{RequestID: id, QuestionCode: "U2", Rating: 3},
	}, wib)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatal(err)
	}

	want := `"ID","Nama","Email","Tipe Permohonan","U1","U2","U3","Rata-rata","Feedback","Tanggal"` + "\r\n" +
		`"7b0e1c7a-4a55-4b0c-9f0e-0a1b2c3d4e5f","Siti ""Ina""","siti@example.id","Data Iklim",5,3,,4,"Cepat, ramah","2025-02-03 09:30"` + "\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("csv mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteCSVNormalisesToNFC(t *testing.T) {
	decomposed := "Jose\u0301" // e + combining acute
	rep := Report{Rows: []Row{{Name: decomposed}}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\"Jos\u00e9\"") {
		t.Fatalf("name not NFC: %q", buf.String())
	}
}

func TestHeaderWithoutQuestions(t *testing.T) {
	got := strings.Join(Report{}.Header(), ",")
	if got != "ID,Nama,Email,Tipe Permohonan,Rata-rata,Feedback,Tanggal" {
		t.Fatalf("header = %q", got)
	}
}
