package artisan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadToArtisan(t *testing.T) {
	skillID := uint(3)
	req := &ArtisanPayload{
		Name:         "Amina Bibi",
		FatherName:   "Ghulam Rasool",
		CNIC:         "35202-1234567-8",
		Gender:       "Female",
		DateOfBirth:  "1988-04-15",
		TehsilCode:   "012003001",
		SkillID:      &skillID,
		LoanStatus:   "yes",
		HasMachinery: "maybe",
	}

	a, err := payloadToArtisan(req)
	require.NoError(t, err)

	assert.Equal(t, "Amina Bibi", a.Name)
	assert.Equal(t, "35202-1234567-8", a.CNIC)
	require.NotNil(t, a.DateOfBirth)
	assert.Equal(t, "1988-04-15", a.DateOfBirth.Format("2006-01-02"))
	assert.True(t, a.IsActive)
	assert.Equal(t, "Yes", a.LoanStatus)
	// Anything not recognizably truthy normalizes to "No".
	assert.Equal(t, "No", a.HasMachinery)
}

func TestPayloadToArtisanRejectsBadDate(t *testing.T) {
	req := &ArtisanPayload{Name: "x", CNIC: "y", Gender: "Male", DateOfBirth: "15/04/1988"}
	_, err := payloadToArtisan(req)
	assert.Error(t, err)
}

func TestPayloadToArtisanAllowsEmptyDate(t *testing.T) {
	req := &ArtisanPayload{Name: "x", CNIC: "y", Gender: "Male"}
	a, err := payloadToArtisan(req)
	require.NoError(t, err)
	assert.Nil(t, a.DateOfBirth)
}

func TestNormalizeFlag(t *testing.T) {
	for _, truthy := range []string{"Yes", "yes", "YES", "true", "1"} {
		assert.Equal(t, "Yes", normalizeFlag(truthy), truthy)
	}
	for _, falsy := range []string{"", "No", "no", "false", "0", "anything"} {
		assert.Equal(t, "No", normalizeFlag(falsy), falsy)
	}
}

func TestMachineRowsDefaultsCount(t *testing.T) {
	rows := machineRows(7, []MachinePayload{
		{Title: "loom"},
		{Title: "wheel", Count: 3},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, 3, rows[1].Count)
	assert.Equal(t, uint(7), rows[0].ArtisanID)
}

func TestLoanRowsDropsUnparseableDate(t *testing.T) {
	rows := loanRows(7, []LoanPayload{
		{Amount: 50000, Date: "2023-06-01"},
		{Amount: 20000, Date: "June 2023"},
	})

	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Date)
	assert.Nil(t, rows[1].Date)
}

func TestValidatePayloadMirrorsBindingRules(t *testing.T) {
	assert.Error(t, validatePayload(&ArtisanPayload{CNIC: "x", Gender: "Male"}))
	assert.Error(t, validatePayload(&ArtisanPayload{Name: "x", Gender: "Male"}))
	assert.Error(t, validatePayload(&ArtisanPayload{Name: "x", CNIC: "y", Gender: "Other"}))
	assert.NoError(t, validatePayload(&ArtisanPayload{Name: "x", CNIC: "y", Gender: "Transgender"}))
}
