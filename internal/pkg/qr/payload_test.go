package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_TaggedDepartmentScan(t *testing.T) {
	raw, err := EncodeDepartmentScan("Engineering")
	require.NoError(t, err)

	p, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, p.DepartmentScan)
	assert.Nil(t, p.EmployeeIdentity)
	assert.Equal(t, "Engineering", p.DepartmentScan.Department)
}

func TestDecode_TaggedEmployeeIdentity(t *testing.T) {
	raw, err := EncodeEmployeeIdentity("EMP-001", "Juan Dela Cruz", "Engineering")
	require.NoError(t, err)

	p, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, p.EmployeeIdentity)
	assert.Nil(t, p.DepartmentScan)
	assert.Equal(t, "EMP-001", p.EmployeeIdentity.ID)
	assert.Equal(t, "Juan Dela Cruz", p.EmployeeIdentity.Name)
}

func TestDecode_LegacyDepartmentOnly(t *testing.T) {
	p, err := Decode([]byte(`{"department":"Treasury"}`))
	require.NoError(t, err)
	require.NotNil(t, p.DepartmentScan)
	assert.Equal(t, "Treasury", p.DepartmentScan.Department)
}

func TestDecode_LegacyIdentity(t *testing.T) {
	p, err := Decode([]byte(`{"id":"EMP-002","name":"Maria Santos","department":"Treasury"}`))
	require.NoError(t, err)
	require.NotNil(t, p.EmployeeIdentity)
	assert.Nil(t, p.DepartmentScan)
}

func TestDecode_LegacyAmbiguousPrefersIdentity(t *testing.T) {
	// An untagged payload with both id and department must never be treated
	// as an attendance scan.
	p, err := Decode([]byte(`{"id":"EMP-003","department":"Engineering"}`))
	require.NoError(t, err)
	assert.Nil(t, p.DepartmentScan)
	require.NotNil(t, p.EmployeeIdentity)
}

func TestDecode_Invalid(t *testing.T) {
	cases := []string{
		`not json at all`,
		`{}`,
		`{"kind":"department_scan"}`,
		`{"kind":"employee_identity"}`,
		`{"kind":"something_else","department":"X"}`,
	}
	for _, raw := range cases {
		_, err := Decode([]byte(raw))
		assert.Error(t, err, "payload %q should not decode", raw)
	}
}
