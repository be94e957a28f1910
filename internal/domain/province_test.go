package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTargetProvince(t *testing.T) {
	for _, code := range []string{"041000000", "042100000", "043400000", "045600000", "045800000", "175200000"} {
		assert.True(t, IsTargetProvince(code), code)
	}

	for _, code := range []string{"", "041000001", "0410000000", "41000000", "130000000", "175100000", "045700000"} {
		assert.False(t, IsTargetProvince(code), code)
	}
}

func TestTargetProvinces(t *testing.T) {
	provinces := TargetProvinces()
	assert.Len(t, provinces, 6)
	assert.Equal(t, Province{Code: "041000000", Name: "Batangas"}, provinces[0])
	assert.Equal(t, Province{Code: "175200000", Name: "Oriental Mindoro"}, provinces[5])

	provinces[0].Code = "999999999"
	assert.True(t, IsTargetProvince("041000000"))
	assert.Equal(t, "041000000", TargetProvinces()[0].Code)
}

func TestProvinceName(t *testing.T) {
	assert.Equal(t, "Laguna", ProvinceName("043400000"))
	assert.Empty(t, ProvinceName("130000000"))
}
