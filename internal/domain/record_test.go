package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRecord_MarshalKeepsColumnOrder(t *testing.T) {
	rec := NewRecord([]Column{
		{Name: "ID", Value: int64(7)},
		{Name: "SKU", Value: "AB123"},
		{Name: "Name", Value: "Brake pad"},
		{Name: "Description", Value: nil},
		{Name: "Meta_year_start", Value: int64(2010)},
	})

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"ID":7,"SKU":"AB123","Name":"Brake pad","Description":null,"Meta_year_start":2010}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestRecord_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewRecord(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("got %s, want {}", data)
	}
}

func TestRecord_MarshalNilPointer(t *testing.T) {
	var rec *Record
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("got %s, want null", data)
	}
}

func TestRecord_Get(t *testing.T) {
	rec := NewRecord([]Column{
		{Name: "SKU", Value: "AB123"},
		{Name: "Categories", Value: nil},
		{Name: "Meta_year_end", Value: int64(2015)},
	})

	if v, ok := rec.Get("SKU"); !ok || v != "AB123" {
		t.Errorf("Get(SKU) = %v, %v", v, ok)
	}
	if _, ok := rec.Get("Price"); ok {
		t.Error("absent column reported present")
	}
	if v, ok := rec.Get("Categories"); !ok || v != nil {
		t.Errorf("NULL column: got %v, %v", v, ok)
	}
	if rec.String("Categories") != "" {
		t.Error("NULL column must render as empty text")
	}
	if rec.String("Meta_year_end") != "2015" {
		t.Errorf("String(Meta_year_end) = %q", rec.String("Meta_year_end"))
	}
	if rec.Len() != 3 {
		t.Errorf("Len = %d, want 3", rec.Len())
	}
}

func TestValidationError(t *testing.T) {
	err := NewMissingParam("make")
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ErrValidation")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Param != "make" {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Error() != `validation failed: parameter "make" is required` {
		t.Errorf("message = %q", err.Error())
	}

	err = NewInvalidParam("year", "must be an integer")
	if err.Error() != `validation failed: parameter "year" must be an integer` {
		t.Errorf("message = %q", err.Error())
	}
}
