package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	forced     int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestRunUpIgnoresNoChange(t *testing.T) {
	require.NoError(t, run(&fakeMigrator{upErr: migrate.ErrNoChange}, nil))

	err := run(&fakeMigrator{upErr: errors.New("syntax error")}, []string{"up"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate up")
}

func TestRunDownStepsBackOnce(t *testing.T) {
	m := &fakeMigrator{}
	require.NoError(t, run(m, []string{"down"}))
	assert.Equal(t, []int{-1}, m.steps)
}

func TestRunForce(t *testing.T) {
	m := &fakeMigrator{}
	require.NoError(t, run(m, []string{"force", "2"}))
	assert.Equal(t, 2, m.forced)

	assert.Error(t, run(m, []string{"force"}))
	assert.Error(t, run(m, []string{"force", "two"}))
}

func TestRunVersion(t *testing.T) {
	require.NoError(t, run(&fakeMigrator{version: 2}, []string{"version"}))
	require.NoError(t, run(&fakeMigrator{versionErr: migrate.ErrNilVersion}, []string{"version"}))
	assert.Error(t, run(&fakeMigrator{versionErr: errors.New("boom")}, []string{"version"}))
}

func TestRunUnknownCommand(t *testing.T) {
	assert.Error(t, run(&fakeMigrator{}, []string{"sideways"}))
}
