package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary(t *testing.T) {
	d := newDictionary()
	d.text("B", "two")
	d.uint("A", 1)
	d.float("C", 2.5)
	d.uint("A", 3)

	assert.Equal(t, []string{"B", "A", "C"}, d.Keys())
	v, err := d.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
	assert.Equal(t, uint64(3), v.Interface())

	var seen []string
	for k, v := range d.All() {
		seen = append(seen, k+"="+v.String())
	}
	assert.Equal(t, []string{"B=two", "A=3", "C=2.5"}, seen)

	var nilDict *Dictionary
	_, err = nilDict.Get("A")
	require.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, nilDict.Len())
}

func TestValidateUID(t *testing.T) {
	valid := []string{"1.2.840.10008.1.2", "0.1", "2.25.0", "1"}
	for _, uid := range valid {
		assert.NoError(t, ValidateUID(uid), uid)
	}
	invalid := []string{"", "1..2", ".1", "1.", "1.02", "1.2a", "1.2.840.10008.1.2.3.4.5.6.7.8.9.10.11.12.13.14.15.16.17.18.19.20.21.22"}
	for _, uid := range invalid {
		assert.ErrorIs(t, ValidateUID(uid), ErrInvalidUID, uid)
	}
}
