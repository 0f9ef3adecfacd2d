package model

import "time"

// College identifies the originating college of a request and the
// affiliation of a staff member.
type College string

const (
	CollegeCOE  College = "COE"
	CollegeCAS  College = "CAS"
	CollegeCBA  College = "CBA"
	CollegeCEGE College = "CEGE"
	CollegeCS   College = "CS"
	CollegeIE   College = "IE"
)

// Colleges returns the full college set in roster order.
func Colleges() []College {
	return []College{CollegeCOE, CollegeCAS, CollegeCBA, CollegeCEGE, CollegeCS, CollegeIE}
}

// DocumentType is the kind of document being requested. Each type carries a
// complexity multiplier that scales processing time and lowers the priority
// of harder documents.
type DocumentType string

const (
	DocTranscript    DocumentType = "Transcript of Records"
	DocEnrollment    DocumentType = "Certificate of Enrollment"
	DocDismissal     DocumentType = "Honorable Dismissal"
	DocCertification DocumentType = "Certification"
)

// DocumentTypes returns all known document types.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocTranscript, DocEnrollment, DocDismissal, DocCertification}
}

// Complexity returns the processing complexity multiplier for the document
// type. Unknown types count as neutral.
func (d DocumentType) Complexity() float64 {
	switch d {
	case DocTranscript:
		return 1.5
	case DocEnrollment:
		return 1.0
	case DocDismissal:
		return 1.2
	case DocCertification:
		return 0.8
	default:
		return 1.0
	}
}

// RequesterType is the category of the person filing the request. Each
// category carries a base priority weight on a 0-10 scale.
type RequesterType string

const (
	RequesterGraduating RequesterType = "Graduating Student"
	RequesterEnrolling  RequesterType = "Enrolling Student"
	RequesterFaculty    RequesterType = "Faculty"
	RequesterAlumni     RequesterType = "Alumni"
	RequesterRegular    RequesterType = "Regular Student"
)

// RequesterTypes returns all known requester categories.
func RequesterTypes() []RequesterType {
	return []RequesterType{RequesterGraduating, RequesterEnrolling, RequesterFaculty, RequesterAlumni, RequesterRegular}
}

// BasePriority returns the category weight on a 0-10 scale. Unknown
// categories fall back to the regular-student weight.
func (r RequesterType) BasePriority() int {
	switch r {
	case RequesterGraduating:
		return 10
	case RequesterEnrolling:
		return 8
	case RequesterFaculty:
		return 7
	case RequesterAlumni:
		return 5
	case RequesterRegular:
		return 3
	default:
		return 3
	}
}

// DocumentRequest is one unit of work flowing through the simulation.
// SubmittedAt is immutable once set. AssignedAt, CompletedAt and
// AssignedStaff are written together by Assign and stay zero until then.
type DocumentRequest struct {
	ID            string
	College       College
	DocumentType  DocumentType
	Urgency       int // 1-10
	RequesterType RequesterType
	SubmittedAt   time.Time

	PriorityScore float64
	AssignedAt    time.Time
	CompletedAt   time.Time
	AssignedStaff string
}

// Assigned reports whether the request has been allocated to a staff member.
func (r *DocumentRequest) Assigned() bool {
	return !r.AssignedAt.IsZero()
}

// Assign records the allocation outcome in one step: the staff member, the
// effective start time and the completion time derived from the processing
// duration. No partial assignment state is ever observable.
func (r *DocumentRequest) Assign(staffID string, start time.Time, processing time.Duration) {
	r.AssignedStaff = staffID
	r.AssignedAt = start
	r.CompletedAt = start.Add(processing)
}

// WaitingMinutes returns the minutes between submission and assignment,
// or 0 when the request was never assigned.
func (r *DocumentRequest) WaitingMinutes() float64 {
	if !r.Assigned() {
		return 0
	}
	return r.AssignedAt.Sub(r.SubmittedAt).Minutes()
}

// TurnaroundMinutes returns the minutes between submission and completion,
// or 0 when the request was never completed.
func (r *DocumentRequest) TurnaroundMinutes() float64 {
	if r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.SubmittedAt).Minutes()
}
