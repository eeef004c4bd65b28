package table

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

type patientID string

type money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func TestValueOf(t *testing.T) {
	when := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	var nilTime *time.Time
	var nilMap map[string]int
	count := 42

	tests := []struct {
		name     string
		input    any
		wantKind Kind
		wantText string
	}{
		{"nil", nil, KindNull, ""},
		{"string", "Ana", KindString, "Ana"},
		{"empty string", "", KindString, ""},
		{"bytes", []byte("raw"), KindString, "raw"},
		{"bool true", true, KindBool, "true"},
		{"bool false", false, KindBool, "false"},
		{"int", 7, KindNumber, "7"},
		{"negative int64", int64(-12), KindNumber, "-12"},
		{"uint8", uint8(200), KindNumber, "200"},
		{"float", 3.25, KindNumber, "3.25"},
		{"float32", float32(0.5), KindNumber, "0.5"},
		{"json number", json.Number("19.99"), KindNumber, "19.99"},
		{"invalid json number", json.Number("abc"), KindString, "abc"},
		{"time", when, KindDate, "2025-03-14T09:26:53.589Z"},
		{"time pointer", &when, KindDate, "2025-03-14T09:26:53.589Z"},
		{"nil time pointer", nilTime, KindNull, ""},
		{"named string", patientID("p-1"), KindString, "p-1"},
		{"int pointer", &count, KindNumber, "42"},
		{"nil map", nilMap, KindNull, ""},
		{"slice", []string{"a", "b"}, KindString, `["a","b"]`},
		{"map", map[string]int{"x": 1}, KindString, `{"x":1}`},
		{"struct", money{Amount: 10, Currency: "EUR"}, KindString, `{"amount":10,"currency":"EUR"}`},
		{"error", errors.New("boom"), KindString, "boom"},
		{"value passthrough", NumberValue(2), KindNumber, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.input)
			if v.Kind() != tt.wantKind {
				t.Errorf("ValueOf(%v).Kind() = %v, want %v", tt.input, v.Kind(), tt.wantKind)
			}
			if v.Text() != tt.wantText {
				t.Errorf("ValueOf(%v).Text() = %q, want %q", tt.input, v.Text(), tt.wantText)
			}
		})
	}
}

func TestValueOf_NonUTCDateRendersInUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	v := ValueOf(time.Date(2025, 1, 31, 22, 0, 0, 0, loc))
	if got, want := v.Text(), "2025-02-01T01:00:00.000Z"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{1234567.891, "1234567.891"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.input); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValue_Predicates(t *testing.T) {
	tests := []struct {
		name       string
		value      Value
		wantEmpty  bool
		wantFinite bool
	}{
		{"null", NullValue(), true, false},
		{"empty string", StringValue(""), true, false},
		{"space", StringValue(" "), false, false},
		{"zero", NumberValue(0), false, true},
		{"nan", NumberValue(math.NaN()), false, false},
		{"inf", NumberValue(math.Inf(1)), false, false},
		{"false", BoolValue(false), false, false},
		{"date", DateValue(time.Unix(0, 0)), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
			if got := tt.value.IsFiniteNumber(); got != tt.wantFinite {
				t.Errorf("IsFiniteNumber() = %v, want %v", got, tt.wantFinite)
			}
		})
	}
}
