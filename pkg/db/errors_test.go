package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationMatchesNamedConstraint(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "uq_farmers_phone" (SQLSTATE 23505)`)

	assert.True(t, IsUniqueViolation(err, "uq_farmers_phone"))
	assert.False(t, IsUniqueViolation(err, "uq_other_constraint"))
}

func TestIsUniqueViolationGenericMatch(t *testing.T) {
	pg := errors.New(`ERROR: duplicate key value violates unique constraint "uq_farmers_phone"`)
	lite := errors.New("UNIQUE constraint failed: farmers.phone")

	assert.True(t, IsUniqueViolation(pg, ""))
	assert.True(t, IsUniqueViolation(lite, ""))
}

func TestIsUniqueViolationUnrelatedError(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil, "uq_farmers_phone"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
}
