package model

// Placeholder values used when a profile field cannot be located.
// The bracketed form survives into generated letters, so a human
// reviewing a letter can see exactly which fields were missing.
const (
	PlaceholderName    = "[Patient Name]"
	PlaceholderDOB     = "[Date of Birth]"
	PlaceholderPolicy  = "[Policy Number]"
	PlaceholderAddress = "[Patient Address]"
)

// PatientProfile holds the identity fields pulled from the clinical
// record. One profile per run; every field falls back independently.
type PatientProfile struct {
	Name         string `json:"name"`
	DateOfBirth  string `json:"date_of_birth"`
	PolicyNumber string `json:"policy_number"`
	Address      string `json:"address"`
}

// EmptyProfile returns a profile with every field at its placeholder.
func EmptyProfile() PatientProfile {
	return PatientProfile{
		Name:         PlaceholderName,
		DateOfBirth:  PlaceholderDOB,
		PolicyNumber: PlaceholderPolicy,
		Address:      PlaceholderAddress,
	}
}
