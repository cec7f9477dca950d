package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/family"
	"github.com/carelinkhq/carebundle/internal/domain/patient"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/service"
)

// RecordHandler exposes the clinical source record endpoints: patients,
// assessments, referrals, and family input.
type RecordHandler struct {
	patients *service.PatientService
	records  *service.RecordService
}

func NewRecordHandler(patients *service.PatientService, records *service.RecordService) *RecordHandler {
	return &RecordHandler{patients: patients, records: records}
}

type createPatientRequest struct {
	FirstName         string                    `json:"first_name" binding:"required"`
	LastName          string                    `json:"last_name" binding:"required"`
	DateOfBirth       time.Time                 `json:"date_of_birth" binding:"required"`
	HealthCardNumber  string                    `json:"health_card_number"`
	Phone             string                    `json:"phone"`
	Email             string                    `json:"email"`
	Address           string                    `json:"address"`
	City              string                    `json:"city"`
	ZipCode           string                    `json:"zip_code"`
	LivingArrangement patient.LivingArrangement `json:"living_arrangement"`
	PrimaryCaregiver  *patient.PrimaryCaregiver `json:"primary_caregiver"`
	ChronicConditions []string                  `json:"chronic_conditions"`
	Notes             string                    `json:"notes"`
	CreatedBy         uuid.UUID                 `json:"created_by"`
}

// CreatePatient registers a new patient.
//
//	POST /api/v1/patients
func (h *RecordHandler) CreatePatient(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       req.DateOfBirth,
		HealthCardNumber:  req.HealthCardNumber,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		City:              req.City,
		ZipCode:           req.ZipCode,
		LivingArrangement: req.LivingArrangement,
		PrimaryCaregiver:  req.PrimaryCaregiver,
		ChronicConditions: req.ChronicConditions,
		Notes:             req.Notes,
		CreatedBy:         req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, p)
}

// GetPatient fetches one patient record.
//
//	GET /api/v1/patients/:id
func (h *RecordHandler) GetPatient(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patients.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

// ListPatients returns a paginated patient list.
//
//	GET /api/v1/patients?search=&status=&page=&page_size=
func (h *RecordHandler) ListPatients(c *gin.Context) {
	q := &patient.ListPatientsQuery{
		Search:   c.Query("search"),
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		st := patient.Status(raw)
		if !st.IsValid() {
			respondServiceError(c, &service.ValidationError{Fields: []string{"status is invalid"}})
			return
		}
		q.Status = &st
	}

	page, err := h.patients.ListPatients(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, page)
}

type createAssessmentRequest struct {
	Type       assessment.Type            `json:"type" binding:"required"`
	AssessedAt time.Time                  `json:"assessed_at" binding:"required"`
	AssessorID uuid.UUID                  `json:"assessor_id"`
	Full       *assessment.FullRecord     `json:"full"`
	Contact    *assessment.ContactRecord  `json:"contact"`
	Screener   *assessment.ScreenerRecord `json:"screener"`
	CreatedBy  uuid.UUID                  `json:"created_by"`
}

// CreateAssessment records a new assessment for a patient and invalidates
// their cached profiles.
//
//	POST /api/v1/patients/:id/assessments
func (h *RecordHandler) CreateAssessment(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req createAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.records.RecordAssessment(c.Request.Context(), &assessment.CreateAssessmentCommand{
		PatientID:  patientID,
		Type:       req.Type,
		AssessedAt: req.AssessedAt,
		AssessorID: req.AssessorID,
		Full:       req.Full,
		Contact:    req.Contact,
		Screener:   req.Screener,
		CreatedBy:  req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, a)
}

// ListAssessments returns a patient's assessments, newest first.
//
//	GET /api/v1/patients/:id/assessments
func (h *RecordHandler) ListAssessments(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.records.ListAssessments(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, list)
}

type createReferralRequest struct {
	ReferralDate             time.Time  `json:"referral_date" binding:"required"`
	ReferralType             string     `json:"referral_type"`
	Source                   string     `json:"source"`
	Program                  string     `json:"program"`
	HospitalDischargeDate    *time.Time `json:"hospital_discharge_date"`
	SurgeryType              string     `json:"surgery_type"`
	ExpectedLengthOfStayDays *int       `json:"expected_length_of_stay_days"`
	Reason                   string     `json:"reason"`
	Notes                    string     `json:"notes"`
	ReferringProvider        string     `json:"referring_provider"`
	CreatedBy                uuid.UUID  `json:"created_by"`
}

// CreateReferral records a new referral for a patient.
//
//	POST /api/v1/patients/:id/referrals
func (h *RecordHandler) CreateReferral(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req createReferralRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.records.RecordReferral(c.Request.Context(), &referral.CreateReferralCommand{
		PatientID:                patientID,
		ReferralDate:             req.ReferralDate,
		ReferralType:             req.ReferralType,
		Source:                   req.Source,
		Program:                  req.Program,
		HospitalDischargeDate:    req.HospitalDischargeDate,
		SurgeryType:              req.SurgeryType,
		ExpectedLengthOfStayDays: req.ExpectedLengthOfStayDays,
		Reason:                   req.Reason,
		Notes:                    req.Notes,
		ReferringProvider:        req.ReferringProvider,
		CreatedBy:                req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, r)
}

// ListReferrals returns a patient's referrals, newest first.
//
//	GET /api/v1/patients/:id/referrals
func (h *RecordHandler) ListReferrals(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.records.ListReferrals(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, list)
}

type createFamilyInputRequest struct {
	ReceivedAt         time.Time `json:"received_at"`
	Relationship       string    `json:"relationship"`
	CaregiverStress    bool      `json:"caregiver_stress"`
	CaregiverAvailable bool      `json:"caregiver_available"`
	TechComfortable    bool      `json:"tech_comfortable"`
	PrefersVirtual     bool      `json:"prefers_virtual"`
	Comments           string    `json:"comments"`
	CreatedBy          uuid.UUID `json:"created_by"`
}

// CreateFamilyInput records structured family feedback for a patient.
//
//	POST /api/v1/patients/:id/family-input
func (h *RecordHandler) CreateFamilyInput(c *gin.Context) {
	patientID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req createFamilyInputRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := h.records.RecordFamilyInput(c.Request.Context(), &family.CreateInputCommand{
		PatientID:          patientID,
		ReceivedAt:         req.ReceivedAt,
		Relationship:       req.Relationship,
		CaregiverStress:    req.CaregiverStress,
		CaregiverAvailable: req.CaregiverAvailable,
		TechComfortable:    req.TechComfortable,
		PrefersVirtual:     req.PrefersVirtual,
		Comments:           req.Comments,
		CreatedBy:          req.CreatedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, in)
}
