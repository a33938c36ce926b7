package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "bad pattern", nil)
	assert.Equal(t, ErrCodeInvalidPattern, err.Code)
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, SeverityFatal, err.Severity)
	assert.Equal(t, "[ERR_401_INVALID_PATTERN] bad pattern", err.Error())
}

func TestCategoryFromCode(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeFileRead, CategoryIO},
		{ErrCodeWalkEntry, CategoryIO},
		{ErrCodeInvalidPattern, CategoryValidation},
		{ErrCodeInvalidGlob, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{"bogus", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryFromCode(tt.code))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeFileRead, nil))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeFileRead, cause)
	assert.ErrorIs(t, err, cause)
}

func TestIs(t *testing.T) {
	a := New(ErrCodeInvalidGlob, "one", nil)
	b := New(ErrCodeInvalidGlob, "two", nil)
	c := New(ErrCodeInvalidPattern, "three", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestInvalidPattern(t *testing.T) {
	cause := fmt.Errorf("missing closing )")
	err := InvalidPattern("(foo", cause)
	assert.Equal(t, ErrCodeInvalidPattern, err.Code)
	assert.Contains(t, err.Message, "(foo")
	assert.Contains(t, err.Message, "missing closing )")
	assert.Equal(t, "(foo", err.Details["pattern"])
	assert.True(t, IsFatal(err))
}

func TestInvalidTypeFilter(t *testing.T) {
	err := InvalidTypeFilter("cobol")
	assert.Equal(t, ErrCodeInvalidType, err.Code)
	assert.Contains(t, err.Message, "cobol")
	assert.NotEmpty(t, err.Suggestion)
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeInvalidGlob, "x", nil)))
	assert.False(t, IsFatal(New(ErrCodeFileRead, "x", nil)))
	assert.False(t, IsFatal(stderrors.New("plain")))
}

func TestWithDetailChaining(t *testing.T) {
	err := New(ErrCodeFileRead, "read failed", nil).
		WithDetail("path", "/tmp/x").
		WithSuggestion("check permissions")

	require.NotNil(t, err.Details)
	assert.Equal(t, "/tmp/x", err.Details["path"])
	assert.Equal(t, "check permissions", err.Suggestion)
}

func TestFormatForCLI(t *testing.T) {
	err := InvalidPattern("[oops", stderrors.New("missing closing ]"))
	out := FormatForCLI(err)
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "Hint:")
	assert.Contains(t, out, ErrCodeInvalidPattern)

	plain := FormatForCLI(stderrors.New("boom"))
	assert.Contains(t, plain, "boom")
	assert.Contains(t, plain, ErrCodeInternal)
}

func TestSummarize(t *testing.T) {
	assert.Empty(t, Summarize(nil, 5))

	errs := []string{"a", "b", "c", "d"}
	out := Summarize(errs, 2)
	assert.Contains(t, out, "4 error(s)")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.NotContains(t, out, "  c\n")
	assert.Contains(t, out, "2 more")
}
