package extract

import (
	"testing"

	"github.com/kirthika85/appealgen/internal/model"
	"github.com/kirthika85/appealgen/internal/normalize"
)

const clinicalText = `Medical Records
Patient Name: Jane Smith
Date of Birth: 1985-03-12
Policy Number: POL-44821
Address: 482 Cedar Lane, Springfield, IL 62704
History: Patient presented with chronic knee pain following a skiing injury.`

func TestExtractPatient_AllFields(t *testing.T) {
	ex := New()
	p := ex.ExtractPatient(normalize.Normalize(clinicalText))

	if p.Name != "Jane Smith" {
		t.Errorf("name = %q", p.Name)
	}
	if p.DateOfBirth != "1985-03-12" {
		t.Errorf("dob = %q", p.DateOfBirth)
	}
	if p.PolicyNumber != "POL-44821" {
		t.Errorf("policy = %q", p.PolicyNumber)
	}
	if p.Address != "482 Cedar Lane, Springfield, IL 62704" {
		t.Errorf("address = %q", p.Address)
	}
}

func TestExtractPatient_PartialProfile(t *testing.T) {
	text := normalize.Normalize("Patient Name: John Doe\nSome clinical notes follow here.")

	ex := New()
	p := ex.ExtractPatient(text)

	if p.Name == model.PlaceholderName {
		t.Error("name should have been extracted")
	}
	if p.DateOfBirth != model.PlaceholderDOB {
		t.Errorf("dob = %q, want placeholder", p.DateOfBirth)
	}
	if p.PolicyNumber != model.PlaceholderPolicy {
		t.Errorf("policy = %q, want placeholder", p.PolicyNumber)
	}
	if p.Address != model.PlaceholderAddress {
		t.Errorf("address = %q, want placeholder", p.Address)
	}
}

func TestExtractPatient_EmptyTextNeverFails(t *testing.T) {
	ex := New()
	p := ex.ExtractPatient("")

	want := model.EmptyProfile()
	if p != want {
		t.Errorf("got %+v, want all placeholders", p)
	}
}

func TestExtractPatient_TrailingFieldBounded(t *testing.T) {
	// The address is the last labeled field; the clinical narrative
	// after it must not be swallowed wholesale.
	ex := New()
	p := ex.ExtractPatient(normalize.Normalize(clinicalText))

	if len(p.Address) > maxPatientValueLen {
		t.Errorf("address too long (%d chars): %q", len(p.Address), p.Address)
	}
}
