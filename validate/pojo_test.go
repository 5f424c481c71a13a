package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/validate"
)

func TestExtractPOJOFields(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"com/example/CreateApplicationRequest.java": []byte(`package com.example;

public class CreateApplicationRequest {
    @NotNull
    private String accountId;
    private Person person;
}
`),
		"com/example/Person.java": []byte(`package com.example;

public class Person {
    private Integer age;
}
`),
	}

	fields, findings, err := validate.ExtractPOJOFields(files, "com/example/CreateApplicationRequest.java")
	require.NoError(t, err)
	assert.Empty(t, findings)

	assert.True(t, fields["accountId"].Required)
	assert.Equal(t, "string", fields["accountId"].CanonicalType)
	assert.Equal(t, validate.ShapeObject, fields["person"].Shape)
	assert.Equal(t, "integer", fields["person.age"].CanonicalType)
}

func TestExtractPOJOFields_EnumFieldIsPrimitiveString(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"com/example/CreateApplicationRequest.java": []byte(`package com.example;

public class CreateApplicationRequest {
    private Status status;
}
`),
		"com/example/Status.java": []byte(`package com.example;

public enum Status {
    ACTIVE("A", "Active");
}
`),
	}

	fields, findings, err := validate.ExtractPOJOFields(files, "com/example/CreateApplicationRequest.java")
	require.NoError(t, err)
	assert.Empty(t, findings)

	assert.Equal(t, validate.ShapePrimitive, fields["status"].Shape)
	assert.Equal(t, "string", fields["status"].CanonicalType)
}
