package services

import (
	"context"
	"testing"

	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(
		repositories.NewMemberRepository(db),
		repositories.NewAgentStudentRepository(db),
	)
}

func TestMissingProfileFields(t *testing.T) {
	t.Run("EmptyProfile", func(t *testing.T) {
		missing := missingProfileFields(profileFields{})
		assert.Equal(t, []string{
			"phone", "dob", "id_number", "id_type", "nationality",
			"home_address", "home_city", "home_zip_code", "home_state",
			"home_country", "gender",
		}, missing)
	})

	t.Run("EmptyStringCountsAsMissing", func(t *testing.T) {
		missing := missingProfileFields(profileFields{Phone: strPtr("")})
		assert.Contains(t, missing, "phone")
	})
}

func TestCheckMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	incomplete := seedMember(t, db, false)
	status, err := svc.CheckMember(ctx, incomplete.ID)
	require.NoError(t, err)
	assert.False(t, status.IsComplete)
	assert.Len(t, status.MissingFields, 11)

	_, err = svc.CheckMember(ctx, 999)
	assert.Error(t, err)
}

func TestUpdateMember_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)

	// Only the given field changes; the rest stays intact.
	updated, err := svc.UpdateMember(ctx, member.ID, &UpdateProfileInput{
		HomeCity: strPtr("Abuja"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Abuja", *updated.HomeCity)
	assert.Equal(t, "+2348012345678", *updated.Phone)

	status, err := svc.CheckMember(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, status.IsComplete)
}

func TestUpdateStudent_ScopedToAgent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	agent := seedAgent(t, db)
	student := seedStudent(t, db, agent.ID, false)

	updated, err := svc.UpdateStudent(ctx, agent.ID, student.ID, &UpdateProfileInput{
		Nationality: strPtr("Ghanaian"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ghanaian", *updated.Nationality)

	// Another agent cannot touch the student.
	_, err = svc.UpdateStudent(ctx, agent.ID+1, student.ID, &UpdateProfileInput{
		Nationality: strPtr("Kenyan"),
	})
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)

	status, err := svc.CheckStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, status.IsComplete)
	assert.NotContains(t, status.MissingFields, "nationality")
}
