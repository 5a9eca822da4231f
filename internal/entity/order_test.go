package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderAddItemAccruesTotal(t *testing.T) {
	o := NewOrder("o1", "u1", time.Now())

	o.AddItem("i1", "p1", 2, 25.0)
	o.AddItem("i2", "p2", 1, 80.0)

	assert.Equal(t, StatusPending, o.Status)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, 130.0, o.TotalAmount)
}

func TestOrderMarkValidated(t *testing.T) {
	o := NewOrder("o1", "u1", time.Now())
	o.MarkValidated()
	assert.Equal(t, StatusValidated, o.Status)

	// only PENDING transitions
	o.Status = StatusFailed
	o.MarkValidated()
	assert.Equal(t, StatusFailed, o.Status)
}
