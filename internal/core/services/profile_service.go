package services

import (
	"context"
	"time"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"
)

// profileFields is the set of fields the completeness gate inspects.
// Members and agent-managed students share the same requirements.
type profileFields struct {
	Phone       *string
	DOB         *time.Time
	IDNumber    *string
	IDType      *string
	Nationality *string
	HomeAddress *string
	HomeCity    *string
	HomeZipCode *string
	HomeState   *string
	HomeCountry *string
	Gender      *string
}

func memberProfile(m *models.Member) profileFields {
	return profileFields{
		Phone:       m.Phone,
		DOB:         m.DOB,
		IDNumber:    m.IDNumber,
		IDType:      m.IDType,
		Nationality: m.Nationality,
		HomeAddress: m.HomeAddress,
		HomeCity:    m.HomeCity,
		HomeZipCode: m.HomeZipCode,
		HomeState:   m.HomeState,
		HomeCountry: m.HomeCountry,
		Gender:      m.Gender,
	}
}

func studentProfile(s *models.AgentStudent) profileFields {
	return profileFields{
		Phone:       s.Phone,
		DOB:         s.DOB,
		IDNumber:    s.IDNumber,
		IDType:      s.IDType,
		Nationality: s.Nationality,
		HomeAddress: s.HomeAddress,
		HomeCity:    s.HomeCity,
		HomeZipCode: s.HomeZipCode,
		HomeState:   s.HomeState,
		HomeCountry: s.HomeCountry,
		Gender:      s.Gender,
	}
}

// missingProfileFields returns the field names that are still unset, in a
// stable display order. A field counts as set only when it is non-nil AND
// non-empty; an empty string saved by a buggy client is still missing.
func missingProfileFields(p profileFields) []string {
	missing := []string{}

	checks := []struct {
		name string
		set  bool
	}{
		{"phone", p.Phone != nil && *p.Phone != ""},
		{"dob", p.DOB != nil},
		{"id_number", p.IDNumber != nil && *p.IDNumber != ""},
		{"id_type", p.IDType != nil && *p.IDType != ""},
		{"nationality", p.Nationality != nil && *p.Nationality != ""},
		{"home_address", p.HomeAddress != nil && *p.HomeAddress != ""},
		{"home_city", p.HomeCity != nil && *p.HomeCity != ""},
		{"home_zip_code", p.HomeZipCode != nil && *p.HomeZipCode != ""},
		{"home_state", p.HomeState != nil && *p.HomeState != ""},
		{"home_country", p.HomeCountry != nil && *p.HomeCountry != ""},
		{"gender", p.Gender != nil && *p.Gender != ""},
	}

	for _, c := range checks {
		if !c.set {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// ProfileService checks and updates the completeness-gated profile fields
type ProfileService struct {
	memberRepo  *repositories.MemberRepository
	studentRepo *repositories.AgentStudentRepository
}

// NewProfileService creates a new profile service
func NewProfileService(memberRepo *repositories.MemberRepository, studentRepo *repositories.AgentStudentRepository) *ProfileService {
	return &ProfileService{memberRepo: memberRepo, studentRepo: studentRepo}
}

// ProfileStatus is the completeness report for one profile
type ProfileStatus struct {
	IsComplete    bool     `json:"is_complete"`
	MissingFields []string `json:"missing_fields"`
}

// CheckMember reports the profile completeness of a member
func (s *ProfileService) CheckMember(ctx context.Context, memberID uint) (*ProfileStatus, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	missing := missingProfileFields(memberProfile(member))
	return &ProfileStatus{IsComplete: len(missing) == 0, MissingFields: missing}, nil
}

// CheckStudent reports the profile completeness of an agent-managed student
func (s *ProfileService) CheckStudent(ctx context.Context, studentID uint) (*ProfileStatus, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	missing := missingProfileFields(studentProfile(student))
	return &ProfileStatus{IsComplete: len(missing) == 0, MissingFields: missing}, nil
}

// UpdateProfileInput carries a partial profile update; nil fields are untouched
type UpdateProfileInput struct {
	Phone       *string    `json:"phone"`
	DOB         *time.Time `json:"dob"`
	IDNumber    *string    `json:"id_number"`
	IDType      *string    `json:"id_type"`
	Nationality *string    `json:"nationality"`
	HomeAddress *string    `json:"home_address"`
	HomeCity    *string    `json:"home_city"`
	HomeZipCode *string    `json:"home_zip_code"`
	HomeState   *string    `json:"home_state"`
	HomeCountry *string    `json:"home_country"`
	Gender      *string    `json:"gender"`
}

// UpdateMember applies a partial profile update to a member
func (s *ProfileService) UpdateMember(ctx context.Context, memberID uint, input *UpdateProfileInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(input,
		&member.Phone, &member.DOB, &member.IDNumber, &member.IDType,
		&member.Nationality, &member.HomeAddress, &member.HomeCity,
		&member.HomeZipCode, &member.HomeState, &member.HomeCountry, &member.Gender)

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateStudent applies a partial profile update to an agent-managed student.
// The student must belong to the calling agent.
func (s *ProfileService) UpdateStudent(ctx context.Context, agentID, studentID uint, input *UpdateProfileInput) (*models.AgentStudent, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.AgentID != agentID {
		return nil, domain.ErrStudentNotFound
	}

	applyProfileUpdate(input,
		&student.Phone, &student.DOB, &student.IDNumber, &student.IDType,
		&student.Nationality, &student.HomeAddress, &student.HomeCity,
		&student.HomeZipCode, &student.HomeState, &student.HomeCountry, &student.Gender)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func applyProfileUpdate(input *UpdateProfileInput,
	phone **string, dob **time.Time, idNumber, idType, nationality,
	homeAddress, homeCity, homeZipCode, homeState, homeCountry, gender **string) {
	if input.Phone != nil {
		*phone = input.Phone
	}
	if input.DOB != nil {
		*dob = input.DOB
	}
	if input.IDNumber != nil {
		*idNumber = input.IDNumber
	}
	if input.IDType != nil {
		*idType = input.IDType
	}
	if input.Nationality != nil {
		*nationality = input.Nationality
	}
	if input.HomeAddress != nil {
		*homeAddress = input.HomeAddress
	}
	if input.HomeCity != nil {
		*homeCity = input.HomeCity
	}
	if input.HomeZipCode != nil {
		*homeZipCode = input.HomeZipCode
	}
	if input.HomeState != nil {
		*homeState = input.HomeState
	}
	if input.HomeCountry != nil {
		*homeCountry = input.HomeCountry
	}
	if input.Gender != nil {
		*gender = input.Gender
	}
}
