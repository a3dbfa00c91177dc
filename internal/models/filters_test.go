package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysam81/oneoffctl/internal/utils"
)

func TestJobFilter_Merge(t *testing.T) {
	base := DefaultJobFilter()
	tags := []string{"t1"}
	got := base.Merge(&JobFilterPatch{Status: utils.Ptr("running"), Limit: utils.Ptr(10), TagIDs: &tags})

	assert.Equal(t, "running", got.Status)
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, "scheduled_at", got.SortBy)
	assert.Equal(t, []string{"t1"}, got.TagIDs)
	assert.Empty(t, base.TagIDs, "merge must not alias the base filter")

	assert.Equal(t, base, base.Merge(nil))
	assert.Equal(t, base, base.Merge(&JobFilterPatch{}))
}

func TestJobFilter_MergeResetsToZero(t *testing.T) {
	base := DefaultJobFilter()
	base.Status = "failed"
	base.Offset = 100
	base.TagIDs = []string{"t1"}

	none := []string{}
	got := base.Merge(&JobFilterPatch{Status: utils.Ptr(""), Offset: utils.Ptr(0), TagIDs: &none})

	assert.Equal(t, "", got.Status)
	assert.Equal(t, 0, got.Offset)
	assert.Equal(t, []string{}, got.TagIDs)
	assert.Equal(t, 50, got.Limit, "unset fields keep the base value")
}

func TestJobFilter_Values(t *testing.T) {
	f := JobFilter{ProjectID: "p", TagIDs: []string{"a", "b"}, Limit: 5, SortBy: "priority"}
	v := f.Values()

	assert.Equal(t, "p", v.Get("project_id"))
	assert.Equal(t, []string{"a", "b"}, v["tag_id"])
	assert.Equal(t, "5", v.Get("limit"))
	assert.Equal(t, "priority", v.Get("sort_by"))
	assert.False(t, v.Has("offset"))
	assert.False(t, v.Has("status"))
}

func TestJobFilter_StableJSON(t *testing.T) {
	a, err := json.Marshal(DefaultJobFilter())
	require.NoError(t, err)
	b, err := json.Marshal(DefaultJobFilter())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t,
		`{"project_id":"","status":"","type":"","search":"","tag_ids":[],"sort_by":"scheduled_at","sort_order":"asc","limit":50,"offset":0}`,
		string(a))
}

func TestExecutionFilter_Values(t *testing.T) {
	v := ExecutionFilter{JobID: "j1", Status: "failed", Offset: 20}.Values()
	assert.Equal(t, "j1", v.Get("job_id"))
	assert.Equal(t, "failed", v.Get("status"))
	assert.Equal(t, "20", v.Get("offset"))
}
