package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/validate"
)

func TestExtractOpenAPIFields(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"api.yaml": []byte(`openapi: 3.0.3
info:
  title: createApplication
  version: "1"
paths:
  /create-application:
    post:
      operationId: createApplication
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/CreateApplicationRequest'
      responses:
        "200":
          description: OK
components:
  schemas:
    CreateApplicationRequest:
      type: object
      required:
        - accountId
      properties:
        accountId:
          type: string
        person:
          $ref: '#/components/schemas/Person'
    Person:
      type: object
      properties:
        age:
          type: integer
`),
	}

	fields, findings, err := validate.ExtractOpenAPIFields(files, "CreateApplicationRequest")
	require.NoError(t, err)
	assert.Empty(t, findings)

	assert.True(t, fields["accountId"].Required)
	assert.Equal(t, "string", fields["accountId"].CanonicalType)
	assert.Equal(t, validate.ShapeObject, fields["person"].Shape)
	assert.Equal(t, "integer", fields["person.age"].CanonicalType)
}
