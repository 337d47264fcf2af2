package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type noopJob struct{ name string }

func (j *noopJob) Name() string                { return j.name }
func (j *noopJob) Run(_ context.Context) error { return nil }

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(&noopJob{name: "a"}, nil, &noopJob{name: "b"})

	jobs := registry.Jobs()
	assert.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].Name())
	assert.Equal(t, "b", jobs[1].Name())
}

func TestRegistryJobsReturnsCopy(t *testing.T) {
	registry := NewRegistry(&noopJob{name: "a"})

	jobs := registry.Jobs()
	jobs[0] = &noopJob{name: "mutated"}
	assert.Equal(t, "a", registry.Jobs()[0].Name())
}
