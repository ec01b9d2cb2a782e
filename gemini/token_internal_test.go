package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/stretchr/testify/assert"
)

func TestTokenizerError(t *testing.T) {
	t.Parallel()

	t.Run("unknown model is invalid", func(t *testing.T) {
		t.Parallel()

		err := tokenizerError("gemini-0.1", errors.New("model gemini-0.1 is not supported"))

		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
		assert.Equal(t, "no local tokenizer for gemini-0.1", docidx.ErrorMessage(err))
	})

	t.Run("load failures are wrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("dial tcp: lookup raw.githubusercontent.com: no such host")
		err := tokenizerError(Model, fmt.Errorf("loading model: %w", cause))

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, docidx.EINTERNAL, docidx.ErrorCode(err))
		assert.Contains(t, err.Error(), "load tokenizer for "+Model)
	})
}
