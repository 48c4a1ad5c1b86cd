package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/skm/responses/dto"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

func TestValidateAnswers(t *testing.T) {
	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	active := []uuid.UUID{q1, q2, q3}

	avg, err := ValidateAnswers(active, []dto.AnswerInput{
		{QuestionID: q1, Rating: 4}, {QuestionID: q2, Rating: 5}, {QuestionID: q3, Rating: 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if avg != 4.33 {
		t.Fatalf("avg = %v, want 4.33", avg)
	}

	bad := map[string][]dto.AnswerInput{
		"missing":   {{QuestionID: q1, Rating: 4}, {QuestionID: q2, Rating: 4}},
		"duplicate": {{QuestionID: q1, Rating: 4}, {QuestionID: q1, Rating: 4}, {QuestionID: q2, Rating: 4}, {QuestionID: q3, Rating: 4}},
		"unknown":   {{QuestionID: q1, Rating: 4}, {QuestionID: q2, Rating: 4}, {QuestionID: q3, Rating: 4}, {QuestionID: uuid.New(), Rating: 4}},
		"range":     {{QuestionID: q1, Rating: 0}, {QuestionID: q2, Rating: 6}, {QuestionID: q3, Rating: 3}},
	}
	for name, answers := range bad {
		if _, err := ValidateAnswers(active, answers); !helper.IsKind(err, helper.KindValidation) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestSubmitRejectsEmptyAnswersBeforeStorage(t *testing.T) {
	svc := NewSkmResponseService(nil, nil)
	_, err := svc.Submit(context.Background(), &authHelper.Identity{UserID: uuid.New()}, uuid.New(), dto.SubmitSkmRequest{}, "")
	if !helper.IsKind(err, helper.KindValidation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Submit(context.Background(), nil, uuid.New(), dto.SubmitSkmRequest{}, ""); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Fatalf("anonymous err = %v", err)
	}
}

func TestReportFilenameUsesJakartaDate(t *testing.T) {
	// 18:30 UTC = 01:30 WIB hari berikutnya
	now := time.Date(2025, 4, 30, 18, 30, 0, 0, time.UTC)
	if got := ReportFilename(now); got != "skm_report_2025-05-01.csv" {
		t.Fatalf("filename = %q", got)
	}
}
