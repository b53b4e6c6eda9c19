package utils

import (
	"regexp"
	"testing"
	"time"

	"asdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoleID(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	want := map[models.Role]string{
		models.RoleParent:     "PAR",
		models.RoleTherapist:  "THR",
		models.RoleTeacher:    "TEA",
		models.RoleResearcher: "RES",
		models.RoleAdmin:      "ADM",
	}
	for role, prefix := range want {
		id, err := GenerateRoleID(role, now)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^`+prefix+`-1718000000000-[0-9A-Z]{6}$`), id)
	}

	_, err := GenerateRoleID(models.Role("nurse"), now)
	assert.Error(t, err)
}

func TestGeneratePatientID(t *testing.T) {
	id := GeneratePatientID(time.UnixMilli(42))
	assert.Regexp(t, `^PAT-42-[0-9A-Z]{6}$`, id)
}
