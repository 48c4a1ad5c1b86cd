// Package export menyusun laporan SKM: satu baris per permohonan,
// satu kolom per pertanyaan aktif.
package export

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02 15:04"

// Source satu jawaban (request, question, rating) beserta data permohonannya.
type Source struct {
	RequestID      uuid.UUID
	FullName       string
	Email          string
	RequestType    string
	QuestionCode   string
	Rating         int
	SkmRating      *float64
	SkmFeedback    *string
	SkmCompletedAt *time.Time
}

type Row struct {
	RequestID   string
	Name        string
	Email       string
	RequestType string
	// Ratings sejajar dengan Report.Codes; "" = tidak dijawab.
	Ratings  []string
	Average  string
	Feedback string
	Date     string
}

type Report struct {
	Codes []string
	Rows  []Row
}

func (r Report) Header() []string {
	h := make([]string, 0, len(r.Codes)+7)
	h = append(h, "ID", "Nama", "Email", "Tipe Permohonan")
	h = append(h, r.Codes...)
	return append(h, "Rata-rata", "Feedback", "Tanggal")
}

// Aggregate mem-pivot sources. Urutan baris = urutan kemunculan request id
// pertama kali; kolom pertanyaan mengikuti codes. Jawaban untuk kode yang
// tidak ada di codes diabaikan. Rata-rata & tanggal diambil apa adanya dari
// permohonan, tidak dihitung ulang.
func Aggregate(codes []string, sources []Source, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}
	col := make(map[string]int, len(codes))
	for i, c := range codes {
		col[c] = i
	}

	rep := Report{Codes: codes}
	index := map[uuid.UUID]int{}
	for _, s := range sources {
		i, ok := index[s.RequestID]
		if !ok {
			i = len(rep.Rows)
			index[s.RequestID] = i
			rep.Rows = append(rep.Rows, newRow(s, len(codes), loc))
		}
		if j, ok := col[s.QuestionCode]; ok {
			rep.Rows[i].Ratings[j] = strconv.Itoa(s.Rating)
		}
	}
	return rep
}

func newRow(s Source, n int, loc *time.Location) Row {
	r := Row{
		RequestID:   s.RequestID.String(),
		Name:        s.FullName,
		Email:       s.Email,
		RequestType: s.RequestType,
		Ratings:     make([]string, n),
	}
	if s.SkmRating != nil {
		r.Average = strconv.FormatFloat(*s.SkmRating, 'f', -1, 64)
	}
	if s.SkmFeedback != nil {
		r.Feedback = *s.SkmFeedback
	}
	if s.SkmCompletedAt != nil {
		r.Date = s.SkmCompletedAt.In(loc).Format(DateLayout)
	}
	return r
}
