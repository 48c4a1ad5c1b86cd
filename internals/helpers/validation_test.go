package helper

import "testing"

type sampleInput struct {
	Title string `json:"title" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=A B"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(&sampleInput{Email: "bukan-email", Kind: "C"})
	if err == nil {
		t.Fatal("expected error")
	}
	ae, ok := err.(*AppError)
	if !ok || ae.Kind != KindValidation {
		t.Fatalf("unexpected %T %v", err, err)
	}
	for _, f := range []string{"title", "email", "kind"} {
		if len(ae.Fields[f]) == 0 {
			t.Errorf("missing field error for %q in %v", f, ae.Fields)
		}
	}
	if ae.Status() != 422 {
		t.Fatalf("status %d", ae.Status())
	}
}

func TestValidateStructOK(t *testing.T) {
	if err := ValidateStruct(&sampleInput{Title: "Cuaca"}); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}
