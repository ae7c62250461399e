package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_UnmarshalsBothWireShapes(t *testing.T) {
	var inv Inventory
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"i1","titleId":"t1","libraryId":"lib-1","totalCopies":3}`), &inv))
	assert.Equal(t, "lib-1", inv.Library.ID)
	assert.Nil(t, inv.Library.Populated)
	assert.Equal(t, "lib-1", inv.Library.Name())

	require.NoError(t, json.Unmarshal([]byte(`{"_id":"i2","libraryId":{"_id":"lib-2","name":"Main Branch","code":"MB"}}`), &inv))
	assert.Equal(t, "lib-2", inv.Library.ID)
	require.NotNil(t, inv.Library.Populated)
	assert.Equal(t, "Main Branch", inv.Library.Name())

	require.NoError(t, json.Unmarshal([]byte(`{"_id":"i3","libraryId":null}`), &inv))
	assert.True(t, inv.Library.IsZero())
}

func TestRef_MarshalsBareID(t *testing.T) {
	ref := Ref{ID: "lib-1", Populated: &Library{ID: "lib-1", Name: "Main"}}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.Equal(t, `"lib-1"`, string(data))
}

func TestRef_ResolveFillsFromDirectory(t *testing.T) {
	libraries := []Library{{ID: "lib-1", Name: "Main", Code: "MB"}, {ID: "lib-2", Name: "East", Code: "EB"}}

	got := Ref{ID: "lib-2"}.Resolve(libraries)
	require.NotNil(t, got.Populated)
	assert.Equal(t, "East", got.Populated.Name)

	// Unknown ids stay bare.
	got = Ref{ID: "lib-9"}.Resolve(libraries)
	assert.Nil(t, got.Populated)
	assert.Equal(t, "lib-9", got.Name())

	// Already populated refs are returned unchanged.
	populated := Ref{ID: "lib-1", Populated: &Library{ID: "lib-1", Name: "Custom"}}
	assert.Equal(t, "Custom", populated.Resolve(libraries).Populated.Name)
}
