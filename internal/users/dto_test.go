package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalInt64DistinguishesNullFromOmitted(t *testing.T) {
	var omitted UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A"}`), &omitted))
	require.False(t, omitted.BranchID.Present)

	var nulled UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"branchId":null}`), &nulled))
	require.True(t, nulled.BranchID.Present)
	require.Nil(t, nulled.BranchID.Value)

	var set UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"branchId":3}`), &set))
	require.True(t, set.BranchID.Present)
	require.NotNil(t, set.BranchID.Value)
	require.Equal(t, int64(3), *set.BranchID.Value)
}

func TestUserResponseOmitsHash(t *testing.T) {
	raw, err := json.Marshal(toResponse(User{ID: 1, Name: "A", Email: "a@example.com", PasswordHash: "bcrypt-material"}))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "bcrypt-material")
	require.NotContains(t, string(raw), "password")
}
