package validators

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
		valid  bool
	}{
		{"national br", "(11) 96123-4567", "BR", "+5511961234567", true},
		{"international", "+55 11 96123-4567", "US", "+5511961234567", true},
		{"us", "+1 650-253-0000", "BR", "+16502530000", true},
		{"lowercase region", "11961234567", "br", "+5511961234567", true},
		{"empty", "   ", "BR", "", false},
		{"garbage", "call me", "BR", "", false},
		{"too short", "123", "BR", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if !tt.valid {
				if !errors.Is(err, ErrInvalidPhone) {
					t.Fatalf("expected ErrInvalidPhone, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "23:59"} {
		if !IsClock(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []string{"24:00", "9:30", "09:60", "0930", ""} {
		if IsClock(s) {
			t.Errorf("%s should be invalid", s)
		}
	}
}

type bookingForm struct {
	Date string `json:"date" binding:"required,isodate"`
	Time string `json:"time" binding:"required,hhmm"`
}

func TestRegister_BindingRules(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := binding.Validator.ValidateStruct(&bookingForm{Date: "2025-03-10", Time: "09:30"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := binding.Validator.ValidateStruct(&bookingForm{Date: "2025-02-30", Time: "9h"})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	if fields["date"] != "isodate" || fields["time"] != "hhmm" {
		t.Errorf("unexpected field errors %v", fields)
	}
}
