package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_ParsesLevel(t *testing.T) {
	t.Cleanup(func() { Log = nil })

	Init("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	Init("nonsense")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())

	SetTextFormatter()
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}

func TestGet_FallsBackToStandardLogger(t *testing.T) {
	Log = nil
	assert.Same(t, logrus.StandardLogger(), Get())

	entry := Reservation("res-1", "pending")
	assert.Equal(t, "res-1", entry.Data["reservation_id"])
	assert.Equal(t, "pending", entry.Data["status"])
}
