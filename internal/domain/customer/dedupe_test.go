package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

func TestFindDuplicate(t *testing.T) {
	existing := []models.Customer{
		{ID: 1, Name: "Ana", Phone: "+5511999990000", Email: "ana@example.com"},
		{ID: 2, Name: "Bruno", Phone: "", Email: "bruno@example.com"},
		{ID: 3, Name: "Carla", Phone: "+5511988887777", Email: ""},
	}

	tests := []struct {
		name   string
		phone  string
		email  string
		wantID uint
	}{
		{"phone match", "+5511999990000", "", 1},
		{"phone match with spaces", "  +5511988887777 ", "", 3},
		{"email match is case insensitive", "", "BRUNO@Example.com", 2},
		{"either field matches", "+550000", "ana@example.com", 1},
		{"phone formatting differs", "(11) 99999-0000", "", 0},
		{"no match", "+5511000000000", "nobody@example.com", 0},
		{"empty values never match", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDuplicate(existing, tt.phone, tt.email)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestFindDuplicate_EmptyStoredEmailDoesNotMatchEmptyInput(t *testing.T) {
	existing := []models.Customer{{ID: 3, Phone: "+551100", Email: ""}}
	assert.Nil(t, FindDuplicate(existing, "+559999", ""))
}
