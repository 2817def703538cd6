package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/models"
)

func TestCustomizationValueDecodesStructuredPair(t *testing.T) {
	var v models.CustomizationValue
	err := json.Unmarshal([]byte(`{"name":"MESSI","number":"10"}`), &v)

	assert.NoError(t, err)
	if assert.NotNil(t, v.NameNumber) {
		assert.Equal(t, "MESSI", v.NameNumber.Name)
		assert.Equal(t, "10", v.NameNumber.Number)
	}
	assert.Equal(t, "MESSI #10", v.Summary())
}

func TestCustomizationValueDecodesScalar(t *testing.T) {
	var v models.CustomizationValue
	err := json.Unmarshal([]byte(`"CAPTAIN"`), &v)

	assert.NoError(t, err)
	assert.Nil(t, v.NameNumber)
	assert.Equal(t, "CAPTAIN", v.Scalar)
}

func TestCustomizationValueDecodesBareScalars(t *testing.T) {
	var v models.CustomizationValue
	assert.NoError(t, json.Unmarshal([]byte(`42`), &v))
	assert.Equal(t, "42", v.Scalar)

	assert.NoError(t, json.Unmarshal([]byte(`true`), &v))
	assert.Equal(t, "true", v.Scalar)

	assert.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.Empty())
}

func TestCustomizationValueRoundTrip(t *testing.T) {
	values := map[string]models.CustomizationValue{
		"number": models.NameNumberValue("MESSI", "10"),
		"note":   models.ScalarValue("gift wrap"),
	}

	data, err := json.Marshal(values)
	assert.NoError(t, err)

	var decoded map[string]models.CustomizationValue
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, values, decoded)
}

func TestCustomizationValueSummary(t *testing.T) {
	assert.Equal(t, "MESSI #10", models.NameNumberValue("MESSI", "10").Summary())
	assert.Equal(t, "MESSI", models.NameNumberValue("MESSI", "").Summary())
	assert.Equal(t, "#10", models.NameNumberValue("", "10").Summary())
	assert.Equal(t, "", models.NameNumberValue("", "").Summary())
	assert.Equal(t, "CAPTAIN", models.ScalarValue("CAPTAIN").Summary())
	assert.Equal(t, "", models.ScalarValue("   ").Summary())
}

func TestCustomizationValueEmpty(t *testing.T) {
	assert.True(t, models.ScalarValue("").Empty())
	assert.True(t, models.NameNumberValue("", "").Empty())
	assert.False(t, models.NameNumberValue("", "10").Empty())
	assert.False(t, models.ScalarValue("x").Empty())
}
