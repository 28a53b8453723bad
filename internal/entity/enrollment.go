package entity

// EnrollmentStatusName is the custom type to enforce enum-like behavior
type EnrollmentStatusName string

const (
	EnrollmentActive      EnrollmentStatusName = "active"
	EnrollmentTransferred EnrollmentStatusName = "transferred"
	EnrollmentLeft        EnrollmentStatusName = "left"
)
