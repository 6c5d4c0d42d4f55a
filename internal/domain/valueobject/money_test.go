package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/campus-market-backend/internal/domain/valueobject"
	"github.com/ignatzorin/campus-market-backend/internal/pkg/apperror"
)

func TestNewCents(t *testing.T) {
	c, err := valueobject.NewCents(4500)
	assert.NoError(t, err)
	assert.Equal(t, int64(4500), c.Int64())

	_, err = valueobject.NewCents(-1)
	assert.True(t, apperror.IsInvalidAmount(err))
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "$45.00", valueobject.Cents(4500).String())
	assert.Equal(t, "$0.49", valueobject.Cents(49).String())
	assert.Equal(t, "$47.51", valueobject.Cents(4751).String())
	assert.Equal(t, "$0.00", valueobject.Cents(0).String())
	assert.Equal(t, "-$1.05", valueobject.Cents(-105).String())
}
