package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnviron(t *testing.T) {
	e := &runEnv{env: map[string]string{
		"B":     "2",
		"A":     "1",
		"EMPTY": "",
		"EQ":    "x=y",
	}}
	assert.Equal(t, []string{"A=1", "B=2", "EMPTY=", "EQ=x=y"}, e.environ())
}

func TestNewRunEnv(t *testing.T) {
	t.Setenv("DEFERS_TEST_VALUE", "a=b")
	e := newRunEnv([]string{"make", "test"})
	assert.Equal(t, "a=b", e.env["DEFERS_TEST_VALUE"])
	assert.Equal(t, []string{"make", "test"}, e.argv)
}
