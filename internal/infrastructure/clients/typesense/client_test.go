package typesense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessesSchema(t *testing.T) {
	schema := BusinessesSchema()
	require.NotNil(t, schema)
	assert.Equal(t, BusinessesCollection, schema.Name)

	fields := map[string]string{}
	for _, f := range schema.Fields {
		fields[f.Name] = f.Type
	}

	assert.Equal(t, "geopoint", fields["location"])
	assert.Equal(t, "string", fields["category_normalized"])
	assert.Equal(t, "bool", fields["is_featured"])
	assert.Equal(t, "int32", fields["price_level"])
	require.NotNil(t, schema.DefaultSortingField)
	assert.Equal(t, "rating", *schema.DefaultSortingField)
}
