package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorSentinelNotMutated(t *testing.T) {
	sentinel := New("not found")
	wrapped := sentinel.Wrap(fmt.Errorf("no such ref %q", "feature"))
	assert.True(t, Is(wrapped, sentinel))
	assert.Nil(t, sentinel.Unwrap())
	assert.Equal(t, "not found", sentinel.Error())
	assert.Contains(t, wrapped.Error(), "feature")
}

func TestErrorWrapf(t *testing.T) {
	sentinel := New("malformed")
	wrapped := sentinel.Wrapf("line %d", 12)
	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "malformed: line 12", wrapped.Error())
}
