package service_test

import (
	"testing"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/task"
	"projectTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input        string
		expected     string
		expectedCode string
	}{
		{" Joao@Email.com ", "joao@email.com", ""},
		{"a.b+tag@sub.example.org", "a.b+tag@sub.example.org", ""},
		{"", "", service.CodeMissingField},
		{"plainaddress", "", service.CodeInvalidEmail},
		{"@no-local.com", "", service.CodeInvalidEmail},
		{"two@@example.com", "", service.CodeInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := service.ValidateEmail(tt.input)
			if tt.expectedCode != "" {
				assert.True(t, service.HasCode(err, tt.expectedCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseEnums(t *testing.T) {
	p, err := service.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, task.PriorityMedium, p)

	p, err = service.ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, task.PriorityHigh, p)

	_, err = service.ParsePriority("HIGH")
	busErr, ok := service.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, service.CodeInvalidEnum, busErr.Code)
	assert.Equal(t, []string{"low", "medium", "high"}, busErr.Details["allowed"])

	s, err := service.ParseTaskStatus("")
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, s)

	_, err = service.ParseTaskStatus("completed")
	assert.True(t, service.HasCode(err, service.CodeInvalidEnum))
}

func TestParseDeadline(t *testing.T) {
	d, err := service.ParseDeadline("deadline", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = service.ParseDeadline("deadline", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, 2, 29), *d)

	for _, bad := range []string{"2023-02-29", "2024-1-5", "2024-01-05T00:00:00Z", "05.01.2024"} {
		_, err := service.ParseDeadline("deadline", bad)
		assert.True(t, service.HasCode(err, service.CodeInvalidDate), bad)
	}
}
