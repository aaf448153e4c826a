package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, isUniqueViolation(dup, "users_email_key"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", dup), "users_email_key"))
	assert.True(t, isUniqueViolation(dup, ""))

	assert.False(t, isUniqueViolation(dup, "applications_job_id_applicant_id_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, "users_email_key"))
	assert.False(t, isUniqueViolation(errors.New("plain failure"), "users_email_key"))
	assert.False(t, isUniqueViolation(nil, "users_email_key"))
}
