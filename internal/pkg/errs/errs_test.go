//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

// ============================================================
// Mark
// ============================================================

func TestMarkSentinelResolvesThroughStdlibIs(t *testing.T) {
	sentinel := errs.New("operation rejected")
	cause := errs.Wrap(errors.New("row not found"), "lookup failed")

	marked := errs.Mark(cause, sentinel)

	assert.True(t, errors.Is(marked, sentinel))
	assert.Equal(t, cause.Error(), marked.Error(), "marking must not rewrite the cause message")
}

func TestMarkKeepsCauseChainReachable(t *testing.T) {
	root := errors.New("connection reset")
	sentinel := errs.New("operation rejected")

	marked := errs.Mark(errs.Wrap(root, "query failed"), sentinel)

	assert.True(t, errors.Is(marked, root))
	assert.True(t, errors.Is(marked, sentinel))
}

func TestMarkNilCauseReturnsSentinel(t *testing.T) {
	sentinel := errs.New("operation rejected")

	assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
}

func TestMarkSurvivesFurtherWrapping(t *testing.T) {
	sentinel := errs.New("operation rejected")
	marked := errs.Mark(errors.New("boom"), sentinel)

	wrapped := fmt.Errorf("handler saw: %w", marked)

	assert.True(t, errors.Is(wrapped, sentinel))
}
