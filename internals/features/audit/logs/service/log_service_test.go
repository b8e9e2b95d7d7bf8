package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryToModel(t *testing.T) {
	m := Entry{Action: "class.created", Entity: "class", EntityID: "abc", Details: map[string]any{"code": "EMR-001"}}.toModel()

	assert.Equal(t, "class.created", m.LogAction)
	assert.Equal(t, "system", m.LogActor)
	if assert.NotNil(t, m.LogEntityID) {
		assert.Equal(t, "abc", *m.LogEntityID)
	}
	assert.Equal(t, "EMR-001", m.LogDetails["code"])
}

func TestEntryToModel_Empty(t *testing.T) {
	m := Entry{Action: "x", Entity: "y", Actor: "ops@example.com"}.toModel()
	assert.Nil(t, m.LogEntityID)
	assert.Nil(t, m.LogDetails)
	assert.Equal(t, "ops@example.com", m.LogActor)
}
