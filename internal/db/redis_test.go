package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_InvalidURL(t *testing.T) {
	client, err := NewRedis(context.Background(), "http://not-redis")
	assert.Error(t, err)
	assert.Nil(t, client)
}
