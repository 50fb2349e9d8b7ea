package storage

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/config"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

func TestWriteAppointmentsCSV(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	apps := []models.Appointment{
		{
			Reference:       "ref-1",
			Date:            time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC),
			DurationMinutes: 45,
			Status:          "confirmed",
			Employee:        models.Employee{Name: "Ana"},
			Service:         models.Service{Name: "Corte", Price: 50},
			Customer:        &models.Customer{Name: "João, Jr", Phone: "+5511999", Email: "j@x.com"},
		},
		{
			Reference:       "ref-2",
			Date:            time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Status:          "pending",
			Employee:        models.Employee{Name: "Bia"},
			Service:         models.Service{Name: "Barba", Price: 25.5},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAppointmentsCSV(&buf, apps, loc))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, appointmentHeader, rows[0])
	assert.Equal(t, []string{
		"ref-1", "2026-03-02", "10:30", "45", "confirmed",
		"Ana", "Corte", "50.00", "João, Jr", "+5511999", "j@x.com",
	}, rows[1])
	assert.Equal(t, "09:00", rows[2][2])
	assert.Equal(t, "", rows[2][8])
}

func TestNewS3Store_DisabledWithoutBucket(t *testing.T) {
	assert.Nil(t, NewS3Store(&config.Config{}))

	s := NewS3Store(&config.Config{S3Bucket: "exports", S3Region: "us-east-1", S3Endpoint: "http://localhost:9000"})
	require.NotNil(t, s)
	assert.Equal(t, 15*time.Minute, s.ttl)
}
